package routes

import (
	"github.com/11Rojas/mascoticas-backend/controllers"
	"github.com/11Rojas/mascoticas-backend/services"

	"github.com/gorilla/mux"
)

// RegisterS3Routes sets up presigned-URL routes under /api/s3
func RegisterS3Routes(r *mux.Router, s3 *services.S3Service) {
	controller := controllers.NewS3Controller(s3)

	s3Router := r.PathPrefix("/api/s3").Subrouter()
	s3Router.HandleFunc("/upload-url", controller.HandleUploadURL).Methods("GET")
	s3Router.HandleFunc("/read-url", controller.HandleReadURL).Methods("GET")
}
