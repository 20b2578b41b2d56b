// Package handler exposes the invoice import over HTTP.
package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"oficina-import/internal/fileio"
	"oficina-import/internal/invoice/catalog"
	"oficina-import/internal/invoice/model"
	"oficina-import/internal/invoice/service"
)

type classifyRequest struct {
	Description  string `json:"descricao"`
	SupplierCode string `json:"codigo"`
	OCRUnitHint  string `json:"unidade"`
}

type classifyResponse struct {
	Category model.CategoryTag   `json:"categoria"`
	Unit     model.UnitOfMeasure `json:"unidade"`
	Volume   *float64            `json:"volume"`
	Rule     string              `json:"regra,omitempty"`
}

type itemsRequest[T any] struct {
	Items []T `json:"itens"`
}

type reviewResponse struct {
	Items []model.ReviewItem `json:"itens"`
}

type commitResponse struct {
	Results []service.CommitResult `json:"resultados"`
}

// Classify: POST /classify: только предзаполнение, без поиска в каталоге.
func Classify(imp *service.Importer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req classifyRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "bad json: "+err.Error())
			return
		}
		ri := imp.Prefill(model.LineItem{
			Description:  req.Description,
			SupplierCode: req.SupplierCode,
			OCRUnitHint:  req.OCRUnitHint,
		})
		_, rule := imp.Explain(req.Description, req.SupplierCode)
		writeJSON(w, http.StatusOK, classifyResponse{
			Category: ri.Category,
			Unit:     ri.Unit,
			Volume:   ri.Volume,
			Rule:     rule,
		})
	}
}

// Review: POST /invoice/review {itens:[...]}.
func Review(imp *service.Importer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req itemsRequest[model.LineItem]
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "bad json: "+err.Error())
			return
		}
		review(w, r, imp, req.Items)
	}
}

// ReviewUpload: POST /invoice/review/upload, multipart.
//
//	items  : накладная (csv/xls/xlsx), обязателен
//	catalog: выгрузка склада; если есть, ищем дубли в ней, а не в настроенном каталоге
//	i_desc, i_code, i_unit, i_qty, i_price: имена колонок (варианты через "|")
//	header_row, catalog_header_row: номер строки заголовков (1-based)
func ReviewUpload(imp *service.Importer, maxUploadMB int) http.HandlerFunc {
	maxMem := int64(maxUploadMB) << 20
	if maxMem <= 0 {
		maxMem = 32 << 20
	}
	return func(w http.ResponseWriter, r *http.Request) {
		log := zerolog.Ctx(r.Context())
		if err := r.ParseMultipartForm(maxMem); err != nil {
			writeError(w, http.StatusBadRequest, "bad multipart form: "+err.Error())
			return
		}
		defer func() {
			if r.MultipartForm != nil {
				_ = r.MultipartForm.RemoveAll()
			}
		}()

		file, hdr, err := r.FormFile("items")
		if err != nil {
			writeError(w, http.StatusBadRequest, "missing items: "+err.Error())
			return
		}
		defer file.Close()

		recs, err := fileio.ReadAnyMaps(file, hdr.Filename, atoi(r.FormValue("header_row"), 1))
		if err != nil {
			writeError(w, http.StatusBadRequest, "failed to read items: "+err.Error())
			return
		}
		m := mappingFromForm(r)
		items, err := toLineItems(recs, m)
		if err != nil {
			writeError(w, http.StatusBadRequest, "failed to map items: "+err.Error())
			return
		}
		log.Debug().
			Str("file", hdr.Filename).
			Int("rows", len(recs)).
			Int("items", len(items)).
			Msg("items parsed")

		reviewer := imp
		if cf, ch, err := r.FormFile("catalog"); err == nil {
			defer cf.Close()
			sheet, err := catalog.LoadSheet(cf, ch.Filename, atoi(r.FormValue("catalog_header_row"), 1))
			if err != nil {
				writeError(w, http.StatusBadRequest, "failed to read catalog: "+err.Error())
				return
			}
			log.Debug().Str("file", ch.Filename).Int("products", sheet.Len()).Msg("catalog parsed")
			reviewer = imp.WithSearcher(sheet)
		} else if !errors.Is(err, http.ErrMissingFile) {
			writeError(w, http.StatusBadRequest, "bad catalog: "+err.Error())
			return
		}

		review(w, r, reviewer, items)
	}
}

// Commit: POST /invoice/commit {itens:[ReviewItem]}.
func Commit(imp *service.Importer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req itemsRequest[model.ReviewItem]
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "bad json: "+err.Error())
			return
		}
		res, err := imp.Commit(r.Context(), req.Items)
		switch {
		case errors.Is(err, service.ErrNoInventory):
			writeError(w, http.StatusServiceUnavailable, err.Error())
			return
		case err != nil:
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("commit")
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, commitResponse{Results: res})
	}
}

func review(w http.ResponseWriter, r *http.Request, imp *service.Importer, items []model.LineItem) {
	start := time.Now()
	out, err := imp.Review(r.Context(), items)
	if err != nil {
		// клиент ушёл или истёк таймаут
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("review aborted")
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	if out == nil {
		out = []model.ReviewItem{}
	}

	matched := 0
	for _, it := range out {
		if it.Match != nil {
			matched++
		}
	}
	zerolog.Ctx(r.Context()).Info().
		Int("items", len(out)).
		Int("matched", matched).
		Dur("elapsed", time.Since(start)).
		Msg("review done")
	writeJSON(w, http.StatusOK, reviewResponse{Items: out})
}
