package server

import (
	"io"
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/msvens/sgallery/internal/archive"
)

func (s *gserver) handleExportOriginals(r *http.Request) (interface{}, error) {
	job := &Job{Id: uuid.New().String(), kind: jobExportOriginals, s: s}
	return scheduleJob(job), nil
}

func (s *gserver) handleImportOriginals(r *http.Request) (interface{}, error) {
	type request struct {
		BestEffort bool `json:"bestEffort" schema:"bestEffort"`
	}
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return nil, BadRequestError("Could not parse upload")
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, BadRequestError("Import needs a file part")
	}
	defer file.Close()

	var params request
	if err = decoder.Decode(&params, r.MultipartForm.Value); err != nil {
		return nil, BadRequestError("Could not decode import fields")
	}
	policy := archive.AllOrNothing
	if params.BestEffort {
		policy = archive.BestEffort
	}

	//spool the archive so the job can read it after this request ends
	tmp, err := os.CreateTemp("", "sg-import-*.zip")
	if err != nil {
		return nil, err
	}
	if _, err = io.Copy(tmp, file); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, err
	}
	if err = tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return nil, err
	}

	job := &Job{Id: uuid.New().String(), kind: jobImportOriginals, s: s,
		archiveFile: tmp.Name(), policy: policy}
	return scheduleJob(job), nil
}

func (s *gserver) handleStatusJob(r *http.Request) (interface{}, error) {
	job := getJob(Var(r, "id"))
	if job == nil {
		return nil, NotFoundError("No such job")
	}
	return job.status(), nil
}

// httpSink streams a transfer file directly as a download response
type httpSink struct {
	w http.ResponseWriter
}

type httpSinkFile struct {
	io.Writer
}

func (httpSinkFile) Close() error { return nil }

func (s httpSink) Create(name string) (io.WriteCloser, error) {
	s.w.Header().Set(contentType, contentJson)
	s.w.Header().Set("Content-Disposition", "attachment; filename=\""+name+"\"")
	return httpSinkFile{s.w}, nil
}

func (s *gserver) handleExportPhotosJSON(w http.ResponseWriter, r *http.Request) {
	if err := s.transfer.ExportPhotosJSON(httpSink{w}); err != nil {
		psResponse(nil, err, w)
	}
}

func (s *gserver) handleExportCategoriesJSON(w http.ResponseWriter, r *http.Request) {
	if err := s.transfer.ExportCategoriesJSON(httpSink{w}); err != nil {
		psResponse(nil, err, w)
	}
}

func (s *gserver) handleImportPhotosJSON(r *http.Request) (interface{}, error) {
	file, err := importFile(r)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	if err = s.transfer.ImportPhotosJSON(file); err != nil {
		return nil, err
	}
	return s.gallery.Photos()
}

func (s *gserver) handleImportCategoriesJSON(r *http.Request) (interface{}, error) {
	file, err := importFile(r)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	if err = s.transfer.ImportCategoriesJSON(file); err != nil {
		return nil, err
	}
	return s.sgdb.Category.List()
}

func importFile(r *http.Request) (io.ReadCloser, error) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return nil, BadRequestError("Could not parse upload")
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, BadRequestError("Import needs a file part")
	}
	return file, nil
}
