package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/quote-compare-cli/internal/config"
	"github.com/sells-group/quote-compare-cli/internal/engine"
	"github.com/sells-group/quote-compare-cli/internal/export"
	"github.com/sells-group/quote-compare-cli/internal/ingest"
	"github.com/sells-group/quote-compare-cli/internal/model"
	"github.com/sells-group/quote-compare-cli/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the comparison HTTP API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newRouter(st, cfg.Ingest),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx) //nolint:errcheck
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

type apiServer struct {
	store  store.Store
	ingest config.IngestConfig
}

func newRouter(st store.Store, ingestCfg config.IngestConfig) http.Handler {
	s := &apiServer{store: st, ingest: ingestCfg}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE"},
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/datasets", func(r chi.Router) {
		r.Get("/", s.listDatasets)
		r.Post("/", s.uploadDataset)
		r.Route("/{id}", func(r chi.Router) {
			r.Delete("/", s.deleteDataset)
			r.Get("/suppliers", s.datasetSuppliers)
			r.Get("/comparison", s.datasetComparison)
			r.Get("/export", s.datasetExport)
		})
	})

	return r
}

func (s *apiServer) listDatasets(w http.ResponseWriter, r *http.Request) {
	datasets, err := s.store.ListDatasets(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if datasets == nil {
		datasets = []model.Dataset{}
	}
	writeJSON(w, http.StatusOK, datasets)
}

func (s *apiServer) uploadDataset(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, eris.Wrap(model.ErrInvalidInput, "missing file field"))
		return
	}
	defer file.Close() //nolint:errcheck

	// Spool the upload to disk so the xlsx reader can seek.
	tmp, err := os.CreateTemp("", "upload-*"+filepath.Ext(header.Filename))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck
	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close() //nolint:errcheck
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	tmp.Close() //nolint:errcheck

	res, err := ingest.File(tmp.Name(), s.ingest.Options())
	if err != nil {
		status := http.StatusInternalServerError
		if eris.Is(err, model.ErrInvalidInput) || eris.Is(err, model.ErrEmptyDataset) {
			status = http.StatusUnprocessableEntity
		}
		writeError(w, status, err)
		return
	}

	ctx := r.Context()
	ds, err := s.store.CreateDataset(ctx, header.Filename, header.Filename)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	n, err := s.store.AddQuotes(ctx, ds.ID, res.Quotes)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	ds.QuoteCount = n

	zap.L().Info("dataset uploaded",
		zap.String("dataset", ds.ID),
		zap.Int("imported", n),
		zap.Int("rejected", res.Rejected),
	)
	writeJSON(w, http.StatusCreated, map[string]any{
		"dataset":  ds,
		"rejected": res.Rejected,
	})
}

func (s *apiServer) deleteDataset(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteDataset(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *apiServer) datasetSuppliers(w http.ResponseWriter, r *http.Request) {
	quotes, ok := s.loadQuotes(w, r)
	if !ok {
		return
	}

	resp := map[string]any{"suppliers": engine.Suppliers(quotes)}
	if min, max, found := engine.DateRange(quotes); found {
		resp["date_from"] = min
		resp["date_to"] = max
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *apiServer) datasetComparison(w http.ResponseWriter, r *http.Request) {
	state, err := filterStateFromQuery(r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	quotes, ok := s.loadQuotes(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, engine.Compare(quotes, state))
}

func (s *apiServer) datasetExport(w http.ResponseWriter, r *http.Request) {
	state, err := filterStateFromQuery(r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	quotes, ok := s.loadQuotes(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="comparison.xlsx"`)
	if err := export.Write(engine.Compare(quotes, state), w); err != nil {
		zap.L().Error("export failed", zap.Error(err))
	}
}

func (s *apiServer) loadQuotes(w http.ResponseWriter, r *http.Request) ([]model.Quote, bool) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	if _, err := s.store.GetDataset(ctx, id); err != nil {
		writeError(w, http.StatusNotFound, err)
		return nil, false
	}
	quotes, err := s.store.ListQuotes(ctx, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return nil, false
	}
	return quotes, true
}

// filterStateFromQuery builds a FilterState from query parameters.
// Reference-dependent toggles without a reference supplier are rejected
// here so the engine never sees the invalid combination.
func filterStateFromQuery(r *http.Request) (model.FilterState, error) {
	q := r.URL.Query()
	var state model.FilterState

	if v := q.Get("from"); v != "" {
		t, err := ingest.ParseQuoteDate(v)
		if err != nil {
			return state, eris.Wrap(err, "from")
		}
		state.DateFrom = &t
	}
	if v := q.Get("to"); v != "" {
		t, err := ingest.ParseQuoteDate(v)
		if err != nil {
			return state, eris.Wrap(err, "to")
		}
		state.DateTo = &t
	}
	state.Suppliers = q["supplier"]
	state.Search = q.Get("search")
	state.ReferenceSupplier = q.Get("reference")
	state.OnlyReferenceProducts = q.Get("only_reference_products") == "true"
	state.Anonymize = q.Get("anonymize") == "true"

	if (state.OnlyReferenceProducts || state.Anonymize) && state.ReferenceSupplier == "" {
		return state, eris.Wrap(model.ErrMissingReferenceSupplier, "set reference")
	}
	return state, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
