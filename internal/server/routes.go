package server

import "github.com/gorilla/mux"

func (s *gserver) routes() {

	s.mGET("/photos").HandlerFunc(s.mResponse(s.handlePhotos))
	s.mPUT("/photos").HandlerFunc(s.handleUploadPhoto)
	s.mGET("/photos/{id:[0-9]+}").HandlerFunc(s.mResponse(s.handlePhoto))
	s.mPUT("/photos/{id:[0-9]+}").HandlerFunc(s.mResponse(s.handleUpdatePhoto))
	s.mDELETE("/photos/{id:[0-9]+}").HandlerFunc(s.mResponse(s.handleDeletePhoto))
	s.path("/photos/{id:[0-9]+}/orig").Methods("GET").HandlerFunc(s.handleDownloadPhoto)
	s.path("/photos/{id:[0-9]+}/thumb").Methods("GET").HandlerFunc(s.handleThumb)

	s.mGET("/categories").HandlerFunc(s.mResponse(s.handleCategories))
	s.mPUT("/categories").HandlerFunc(s.mResponse(s.handleAddCategory))
	s.mGET("/categories/{id:[0-9]+}").HandlerFunc(s.mResponse(s.handleCategory))
	s.mPUT("/categories/{id:[0-9]+}").HandlerFunc(s.mResponse(s.handleUpdateCategory))
	s.mDELETE("/categories/{id:[0-9]+}").HandlerFunc(s.mResponse(s.handleDeleteCategory))
	s.mGET("/categories/{id:[0-9]+}/photos").HandlerFunc(s.mResponse(s.handleCategoryPhotos))

	s.mPUT("/export/originals").HandlerFunc(s.mResponse(s.handleExportOriginals))
	s.path("/export/photos").Methods("GET").HandlerFunc(s.handleExportPhotosJSON)
	s.path("/export/categories").Methods("GET").HandlerFunc(s.handleExportCategoriesJSON)
	s.mPUT("/import/originals").HandlerFunc(s.mResponse(s.handleImportOriginals))
	s.mPUT("/import/photos").HandlerFunc(s.mResponse(s.handleImportPhotosJSON))
	s.mPUT("/import/categories").HandlerFunc(s.mResponse(s.handleImportCategoriesJSON))

	s.mGET("/jobs/{id}").HandlerFunc(s.mResponse(s.handleStatusJob))

	s.mDELETE("/data").HandlerFunc(s.mResponse(s.handleResetData))
}

func (s *gserver) mGET(p string) *mux.Route {
	return s.path(p).Methods("GET")
}

func (s *gserver) mDELETE(p string) *mux.Route {
	return s.path(p).Methods("DELETE")
}

func (s *gserver) mPUT(p string) *mux.Route {
	return s.path(p).Methods("PUT", "POST")
}

func (s *gserver) path(path string) *mux.Route {
	return s.r.Path(s.prefixPath + path)
}
