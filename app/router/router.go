package router

import (
	"net/http"
	"strings"

	"galeria-admin/app/controller"
)

type Controllers struct {
	Gallery *controller.GalleryController
	Media   *controller.MediaController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func SetupRoutes(controllers *Controllers) {
	// Ping endpoint
	http.HandleFunc("/ping", pingHandler)

	// Gallery search
	http.HandleFunc("/admin/galleries", controllers.Gallery.Search)

	// Gallery sub-resources: /admin/galleries/{id}/{action}
	http.HandleFunc("/admin/galleries/", func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/access"):
			controllers.Gallery.AccessStatus(w, r)
		case strings.HasSuffix(r.URL.Path, "/verify"):
			controllers.Gallery.Verify(w, r)
		case strings.HasSuffix(r.URL.Path, "/screenshots"):
			controllers.Gallery.Screenshots(w, r)
		default:
			http.Error(w, "Not found", http.StatusNotFound)
		}
	})

	// Media collection: list (GET) and batched delete (DELETE)
	http.HandleFunc("/admin/media", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			controllers.Media.List(w, r)
		case http.MethodDelete:
			controllers.Media.Delete(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Selection state
	http.HandleFunc("/admin/media/selection", controllers.Media.UpdateSelection)

	// Asynchronous jobs (optimize, migrate)
	http.HandleFunc("/admin/media/jobs", controllers.Media.TriggerJob)
}
