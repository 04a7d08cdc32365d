package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/pthm/hxregion"
)

func main() {
	store := NewStore()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	view, err := hxregion.NewView(hxregion.ViewConfig{
		Template: shell(),
		ID:       "app",
		UI:       map[string]string{"side": "aside.sidebar"},
		Regions: map[string]any{
			"main":    "#main",
			"sidebar": "@ui.side",
		},
		Logger: logger,
	})
	if err != nil {
		log.Fatal(err)
	}
	if _, err := view.ShowChildView("sidebar", taskList(store.List())); err != nil {
		log.Fatal(err)
	}

	regions := hxregion.NewHandler(view)

	mux := http.NewServeMux()
	mux.Handle("/_r/", http.StripPrefix("/_r", regions))
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		err := regions.Do(func(v *hxregion.View) error {
			markup, err := v.HTML()
			if err != nil {
				return err
			}
			fmt.Fprintf(w, `<!doctype html><html><head><script src="https://unpkg.com/htmx.org@2"></script></head><body>%s</body></html>`, markup)
			return nil
		})
		if err != nil {
			http.Error(w, "Internal error", http.StatusInternalServerError)
		}
	})
	mux.HandleFunc("GET /task/{id}", func(w http.ResponseWriter, r *http.Request) {
		task, ok := store.Get(r.PathValue("id"))
		if !ok {
			http.NotFound(w, r)
			return
		}
		var markup string
		err := regions.Do(func(v *hxregion.View) error {
			if _, err := v.ShowChildView("main", taskDetail(task)); err != nil {
				return err
			}
			region, err := v.GetRegion("main")
			if err != nil {
				return err
			}
			markup = hxregion.RegionHTML(region)
			return nil
		})
		if err != nil {
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}
		if !hxregion.IsHTMX(r) {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, markup)
	})

	addr := ":8080"
	fmt.Printf("Starting server at http://localhost%s\n", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatal(err)
	}
}
