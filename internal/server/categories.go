package server

import (
	"net/http"
)

type categoryRequest struct {
	Name        string `json:"name" schema:"name"`
	Description string `json:"description" schema:"description"`
}

func (s *gserver) handleCategories(r *http.Request) (interface{}, error) {
	return s.sgdb.Category.List()
}

func (s *gserver) handleCategory(r *http.Request) (interface{}, error) {
	id, err := intVar(r, "id")
	if err != nil {
		return nil, err
	}
	return s.sgdb.Category.Get(id)
}

func (s *gserver) handleAddCategory(r *http.Request) (interface{}, error) {
	var params categoryRequest
	if err := decodeRequest(r, &params); err != nil {
		return nil, err
	}
	return s.sgdb.Category.Add(params.Name, params.Description)
}

func (s *gserver) handleUpdateCategory(r *http.Request) (interface{}, error) {
	id, err := intVar(r, "id")
	if err != nil {
		return nil, err
	}
	category, err := s.sgdb.Category.Get(id)
	if err != nil {
		return nil, err
	}
	var params categoryRequest
	if err = decodeRequest(r, &params); err != nil {
		return nil, err
	}
	category.Name = params.Name
	category.Description = params.Description
	return s.sgdb.Category.Update(category)
}

func (s *gserver) handleDeleteCategory(r *http.Request) (interface{}, error) {
	id, err := intVar(r, "id")
	if err != nil {
		return nil, err
	}
	category, err := s.sgdb.Category.Get(id)
	if err != nil {
		return nil, err
	}
	if err = s.sgdb.Category.Delete(id); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *gserver) handleCategoryPhotos(r *http.Request) (interface{}, error) {
	id, err := intVar(r, "id")
	if err != nil {
		return nil, err
	}
	photos, err := s.gallery.PhotosByCategory(id)
	if err != nil {
		return nil, err
	}
	return &PhotoList{len(photos), photos}, nil
}

func (s *gserver) handleResetData(r *http.Request) (interface{}, error) {
	if err := s.gallery.ResetAll(); err != nil {
		return nil, err
	}
	return s.sgdb.Category.List()
}
