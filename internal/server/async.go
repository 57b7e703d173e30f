package server

import (
	"context"
	"os"
	"sync"

	"github.com/msvens/sgallery/internal/archive"
)

const StateScheduled = "SCHEDULED"
const StateStarted = "STARTED"
const StateFinished = "FINISHED"
const StateAborted = "ABORTED"

type jobKind int

const (
	jobExportOriginals jobKind = iota
	jobImportOriginals
)

type Job struct {
	Id      string    `json:"id"`
	State   string    `json:"state"`
	Percent int       `json:"percent"`
	Err     *ApiError `json:"error,omitempty"`

	mu          sync.Mutex
	kind        jobKind
	s           *gserver
	archiveFile string
	policy      archive.ImportPolicy
}

var jobChan = make(chan *Job, 10)
var wg sync.WaitGroup
var jobMu sync.RWMutex
var jobMap = make(map[string]*Job)

func scheduleJob(job *Job) *Job {
	job.State = StateScheduled
	jobMu.Lock()
	jobMap[job.Id] = job
	jobMu.Unlock()
	//snapshot before the worker can pick the job up
	status := job.status()
	jobChan <- job
	return status
}

func getJob(id string) *Job {
	jobMu.RLock()
	defer jobMu.RUnlock()
	return jobMap[id]
}

func worker(jobChan <-chan *Job) {
	defer wg.Done()

	for job := range jobChan {
		job.s.l.Infow("Processing job", "jobid", job.Id)
		process(job)
	}
}

// status returns a consistent copy of the serializable fields. The
// live Job keeps changing under its lock while the worker runs, so
// handlers never hand it to the json encoder directly
func (job *Job) status() *Job {
	job.mu.Lock()
	defer job.mu.Unlock()
	return &Job{Id: job.Id, State: job.State, Percent: job.Percent, Err: job.Err}
}

// Report lets a Job act as the progress observer of its transfer
func (job *Job) Report(percent float64) {
	job.mu.Lock()
	if p := int(percent); p > job.Percent {
		job.Percent = p
	}
	job.mu.Unlock()
}

func process(job *Job) {
	job.mu.Lock()
	job.State = StateStarted
	job.mu.Unlock()

	var err error
	switch job.kind {
	case jobExportOriginals:
		sink := archive.DirSink{Dir: job.s.exportDir}
		err = job.s.transfer.ExportOriginals(context.Background(), sink, job)
	case jobImportOriginals:
		err = job.s.transfer.ImportOriginals(context.Background(), job.archiveFile, job, job.policy)
		_ = os.Remove(job.archiveFile)
	}
	finishJob(job, err)
}

func finishJob(job *Job, err error) {
	job.mu.Lock()
	defer job.mu.Unlock()
	job.s = nil
	if err != nil {
		job.State = StateAborted
		job.Err = ResolveError(err)
	} else {
		job.Percent = 100
		job.State = StateFinished
	}
}
