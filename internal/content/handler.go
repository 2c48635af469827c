package content

import "net/http"

func serveDocument(doc []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		_, _ = w.Write(doc)
	}
}

// HandleProjects is GET /api/data/projects.
func HandleProjects() http.HandlerFunc {
	return serveDocument(projectsJSON)
}

// HandleAboutSections is GET /api/data/about-sections.
func HandleAboutSections() http.HandlerFunc {
	return serveDocument(aboutSectionsJSON)
}
