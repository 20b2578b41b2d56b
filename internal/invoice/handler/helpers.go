package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"oficina-import/internal/fileio"
	"oficina-import/internal/invoice/model"
	"oficina-import/internal/utils"
)

// Колонки накладной по умолчанию; форма может переопределить.
const (
	defDescCol  = "descricao|descricao do produto|produto|discriminacao|item"
	defCodeCol  = "codigo|cod|codigo produto|referencia|ref"
	defUnitCol  = "unidade|un|und|unid"
	defQtyCol   = "quantidade|qtd|qtde|quant"
	defPriceCol = "valor unitario|vl unit|vlr unit|preco unitario|preco|valor"
)

type mapping struct {
	Desc, Code, Unit, Qty, Price string
}

func mappingFromForm(r *http.Request) mapping {
	return mapping{
		Desc:  formOr(r, "i_desc", defDescCol),
		Code:  formOr(r, "i_code", defCodeCol),
		Unit:  formOr(r, "i_unit", defUnitCol),
		Qty:   formOr(r, "i_qty", defQtyCol),
		Price: formOr(r, "i_price", defPriceCol),
	}
}

func formOr(r *http.Request, key, def string) string {
	if v := strings.TrimSpace(r.FormValue(key)); v != "" {
		return v
	}
	return def
}

// строка итогов: "Total", "Subtotal", "Valor total" без количества
var reTotalRow = regexp.MustCompile(`(?i)^(?:sub\s*-?\s*total|total(?:\s+geral)?|valor\s+total)\b`)

// toLineItems переводит строки таблицы в LineItem, пропуская повторные шапки,
// итоги и строки без описания.
func toLineItems(recs []map[string]string, m mapping) ([]model.LineItem, error) {
	items := make([]model.LineItem, 0, len(recs))
	if len(recs) == 0 {
		return items, nil
	}
	first := recs[0]
	descKey := fileio.ResolveKey(first, m.Desc)
	codeKey := fileio.ResolveKey(first, m.Code)
	unitKey := fileio.ResolveKey(first, m.Unit)
	qtyKey := fileio.ResolveKey(first, m.Qty)
	priceKey := fileio.ResolveKey(first, m.Price)
	if descKey == "" {
		return nil, fmt.Errorf("no description column %q", m.Desc)
	}

	for _, rec := range recs {
		if looksLikeHeaderMap(rec) {
			continue
		}
		desc := strings.TrimSpace(rec[descKey])
		if desc == "" {
			continue
		}
		it := model.LineItem{
			Description:  desc,
			SupplierCode: strings.TrimSpace(rec[codeKey]),
			OCRUnitHint:  strings.TrimSpace(rec[unitKey]),
		}
		it.Quantity, _ = utils.ParseFloatBR(rec[qtyKey])
		it.UnitPrice, _ = utils.ParseFloatBR(rec[priceKey])
		// "Total Quartz 9000" это товар: у него есть количество
		if it.Quantity == 0 && reTotalRow.MatchString(desc) {
			continue
		}
		items = append(items, it)
	}
	return items, nil
}

// looksLikeHeaderMap: строка, где значения снова заголовки или "total".
func looksLikeHeaderMap(m map[string]string) bool {
	cnt := 0
	for _, v := range m {
		s := strings.ToLower(strings.TrimSpace(v))
		if strings.HasPrefix(s, "descri") || strings.HasPrefix(s, "quant") ||
			strings.HasPrefix(s, "codigo") || strings.HasPrefix(s, "código") ||
			strings.HasPrefix(s, "valor") || strings.HasPrefix(s, "total") {
			cnt++
		}
	}
	return cnt >= 2
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func atoi(s string, def int) int {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || i <= 0 {
		return def
	}
	return i
}
