package server

import (
	"net/http"

	"github.com/msvens/sgallery/internal/dao"
	"github.com/msvens/sgallery/internal/img"
	"github.com/msvens/sgallery/internal/service"
	"go.uber.org/zap"
)

type PhotoList struct {
	Length int          `json:"length"`
	Photos []*dao.Photo `json:"photos,omitempty"`
}

func (s *gserver) handlePhotos(r *http.Request) (interface{}, error) {
	photos, err := s.gallery.Photos()
	if err != nil {
		return nil, err
	}
	return &PhotoList{len(photos), photos}, nil
}

func (s *gserver) handlePhoto(r *http.Request) (interface{}, error) {
	id, err := intVar(r, "id")
	if err != nil {
		return nil, err
	}
	return s.sgdb.Photo.Get(id)
}

func (s *gserver) handleUpdatePhoto(r *http.Request) (interface{}, error) {
	id, err := intVar(r, "id")
	if err != nil {
		return nil, err
	}
	photo, err := s.sgdb.Photo.Get(id)
	if err != nil {
		return nil, err
	}
	var params service.UploadMeta
	if err = decodeRequest(r, &params); err != nil {
		return nil, err
	}
	photo.Date = params.Date
	photo.Location = params.Location
	photo.Photographer = params.Photographer
	photo.CategoryId = params.CategoryId
	return s.sgdb.Photo.Update(photo)
}

func (s *gserver) handleDeletePhoto(r *http.Request) (interface{}, error) {
	id, err := intVar(r, "id")
	if err != nil {
		return nil, err
	}
	photo, err := s.sgdb.Photo.Get(id)
	if err != nil {
		return nil, err
	}
	s.l.Infow("Delete Photo", "id", id)
	if del, err := s.gallery.DeletePhoto(id); err != nil {
		return nil, err
	} else if !del {
		return nil, NotFoundError("Photo not found")
	}
	return photo, nil
}

// multipart upload: the file part plus metadata form fields
func (s *gserver) handleUploadPhoto(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		psResponse(nil, BadRequestError("Could not parse upload"), w)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		psResponse(nil, BadRequestError("Upload needs a file part"), w)
		return
	}
	defer file.Close()
	var meta service.UploadMeta
	if err = decoder.Decode(&meta, r.MultipartForm.Value); err != nil {
		psResponse(nil, BadRequestError("Could not decode upload fields"), w)
		return
	}
	photo, err := s.gallery.UploadPhoto(file, header.Filename, meta)
	if err != nil {
		s.l.Errorw("upload failed", "filename", header.Filename, zap.Error(err))
	}
	psResponse(photo, err, w)
}

func (s *gserver) handleDownloadPhoto(w http.ResponseWriter, r *http.Request) {
	id, err := intVar(r, "id")
	if err != nil {
		http.Error(w, "Could not parse id", http.StatusBadRequest)
		return
	}
	photo, err := s.sgdb.Photo.Get(id)
	if err != nil {
		http.Error(w, "photo not found", http.StatusNotFound)
		return
	}
	serveEncodedImage(w, photo.OriginalPath, photo.Filename)
}

func (s *gserver) handleThumb(w http.ResponseWriter, r *http.Request) {
	id, err := intVar(r, "id")
	if err != nil {
		http.Error(w, "Could not parse id", http.StatusBadRequest)
		return
	}
	thumb, err := s.sgdb.Thumb.Get(id)
	if err != nil {
		http.Error(w, "thumbnail not found", http.StatusNotFound)
		return
	}
	serveEncodedImage(w, thumb.Data, "")
}

func serveEncodedImage(w http.ResponseWriter, encoded, filename string) {
	data, format, err := img.DecodeDataURI(encoded)
	if err != nil {
		http.Error(w, "stored image is not decodable", http.StatusInternalServerError)
		return
	}
	w.Header().Set(contentType, "image/"+format)
	if filename != "" {
		w.Header().Set("Content-Disposition", "attachment; filename=\""+filename+"\"")
	}
	w.Write(data)
}
