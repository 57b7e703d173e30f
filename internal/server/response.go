package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/gorilla/schema"
)

type PSResponse struct {
	Err  *ApiError   `json:"error,omitempty"`
	Data interface{} `json:"data,omitempty"`
}

const (
	maxUploadSize = 64 << 20
	contentType   = "Content-Type"
	contentJson   = "application/json"
)

var decoder = schema.NewDecoder()

type reqHandler func(r *http.Request) (interface{}, error)

func (s *gserver) mResponse(rh reqHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := rh(r)
		psResponse(data, err, w)
	}
}

func psResponse(data interface{}, err error, w http.ResponseWriter) {
	setJson(w)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	var resp PSResponse
	if err != nil {
		resp = PSResponse{ResolveError(err), nil}
	} else if data != nil {
		resp = PSResponse{nil, data}
	} else {
		resp = PSResponse{InternalError("no payload"), nil}
	}
	if e := enc.Encode(resp); e != nil {
		fmt.Println("could not encode response", e)
	}
}

func setJson(w http.ResponseWriter) {
	w.Header().Set(contentType, contentJson)
}

func Var(r *http.Request, name string) string {
	return mux.Vars(r)[name]
}

func intVar(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(Var(r, name), 10, 64)
	if err != nil {
		return 0, BadRequestError("Could not parse id")
	}
	return id, nil
}

func decodeRequest(r *http.Request, dst interface{}) error {
	if strings.Contains(r.Header.Get(contentType), contentJson) {
		if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
			return BadRequestError("Could not decode request body: " + err.Error())
		}
		return nil
	}
	if err := r.ParseForm(); err != nil {
		return BadRequestError("Could not parse request form")
	}
	if err := decoder.Decode(dst, r.Form); err != nil {
		return BadRequestError("Could not decode request form: " + err.Error())
	}
	return nil
}
