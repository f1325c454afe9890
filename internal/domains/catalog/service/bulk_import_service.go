package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"
	"time"

	"bookhaven-backend/internal/domains/catalog/model"
	"bookhaven-backend/pkg/database"
	"bookhaven-backend/pkg/logger"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Spreadsheet columns recognized by the catalog import. Only name and
// price are required; everything else defaults to empty.
var importColumns = map[string]bool{
	"name": true, "description": true, "author": true, "genre": true,
	"publisher": true, "isbn": true, "language": true, "format": true,
	"pages": true, "dimensions": true, "weight": true, "price": true,
	"stock_quantity": true, "is_available_in_store": true,
	"is_bestseller": true, "is_award_winner": true, "is_new_release": true,
	"is_coming_soon": true, "on_sale": true, "discount_percent": true,
	"discount_start_at": true, "discount_end_at": true, "publication_date": true,
}

// ImportProducts reads an xlsx file and inserts every row in a single
// transaction. Validation runs over the whole file first; one bad row
// rejects the import so admins fix the file instead of chasing
// partial loads.
func (s *CatalogService) ImportProducts(ctx context.Context, file *multipart.FileHeader) (*model.BulkImportResult, error) {
	f, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open import file: %w", err)
	}
	defer f.Close()

	workbook, err := excelize.OpenReader(f)
	if err != nil {
		return &model.BulkImportResult{
			Success: false,
			Errors: []model.ImportRowError{
				{Row: 0, Field: "file", Error: "not a valid xlsx file"},
			},
		}, nil
	}
	defer workbook.Close()

	sheet := workbook.GetSheetName(0)
	rows, err := workbook.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	if len(rows) < 2 {
		return &model.BulkImportResult{
			Success: false,
			Errors: []model.ImportRowError{
				{Row: 0, Field: "file", Error: model.ErrEmptyImportFile.Error()},
			},
		}, nil
	}

	dataRows := rows[1:]
	result := &model.BulkImportResult{TotalRows: len(dataRows)}

	if len(dataRows) > model.BulkImportMaxRows {
		result.Errors = append(result.Errors, model.ImportRowError{
			Row: 0, Field: "file",
			Error: fmt.Sprintf("file exceeds %d rows limit", model.BulkImportMaxRows),
		})
		return result, nil
	}

	header := buildHeaderIndex(rows[0])
	if _, ok := header["name"]; !ok {
		result.Errors = append(result.Errors, model.ImportRowError{
			Row: 1, Field: "name", Error: "missing required column",
		})
		return result, nil
	}
	if _, ok := header["price"]; !ok {
		result.Errors = append(result.Errors, model.ImportRowError{
			Row: 1, Field: "price", Error: "missing required column",
		})
		return result, nil
	}

	now := s.clock.Now()
	products := make([]*model.Product, 0, len(dataRows))
	for i, row := range dataRows {
		rowNum := i + 2 // 1-based, after the header
		product, rowErrs := parseImportRow(row, header, rowNum)
		if len(rowErrs) > 0 {
			result.Errors = append(result.Errors, rowErrs...)
			continue
		}
		product.CreatedAt = now
		products = append(products, product)
	}

	if len(result.Errors) > 0 {
		return result, nil
	}

	err = database.WithTransaction(ctx, s.pool, func(tx pgx.Tx) error {
		for _, p := range products {
			if err := s.repo.CreateTx(ctx, tx, p); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.Success = true
	result.Imported = len(products)
	logger.Info("Catalog import completed", map[string]interface{}{
		"file":     file.Filename,
		"imported": result.Imported,
	})
	return result, nil
}

func buildHeaderIndex(headerRow []string) map[string]int {
	index := map[string]int{}
	for i, cell := range headerRow {
		name := strings.ToLower(strings.TrimSpace(cell))
		if importColumns[name] {
			index[name] = i
		}
	}
	return index
}

// parseImportRow maps one spreadsheet row to a product. All parse
// failures for the row are reported, not just the first.
func parseImportRow(row []string, header map[string]int, rowNum int) (*model.Product, []model.ImportRowError) {
	cell := func(name string) string {
		idx, ok := header[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var errs []model.ImportRowError
	addErr := func(field, msg string) {
		errs = append(errs, model.ImportRowError{Row: rowNum, Field: field, Error: msg})
	}

	p := &model.Product{}

	p.Name = cell("name")
	if p.Name == "" {
		addErr("name", "name is required")
	}

	if raw := cell("price"); raw == "" {
		addErr("price", "price is required")
	} else if price, err := decimal.NewFromString(raw); err != nil || price.IsNegative() {
		addErr("price", "price must be a non-negative number")
	} else {
		p.Price = price
	}

	p.Description = optionalCell(cell("description"))
	p.Author = optionalCell(cell("author"))
	p.Genre = optionalCell(cell("genre"))
	p.Publisher = optionalCell(cell("publisher"))
	p.ISBN = optionalCell(cell("isbn"))
	p.Language = optionalCell(cell("language"))
	p.Format = optionalCell(cell("format"))
	p.Dimensions = optionalCell(cell("dimensions"))

	if raw := cell("pages"); raw != "" {
		if pages, err := strconv.Atoi(raw); err != nil || pages < 0 {
			addErr("pages", "pages must be a non-negative integer")
		} else {
			p.Pages = &pages
		}
	}

	if raw := cell("weight"); raw != "" {
		if weight, err := decimal.NewFromString(raw); err != nil {
			addErr("weight", "weight must be a number")
		} else {
			p.Weight = decimal.NewNullDecimal(weight)
		}
	}

	if raw := cell("stock_quantity"); raw != "" {
		if qty, err := strconv.Atoi(raw); err != nil || qty < 0 {
			addErr("stock_quantity", "stock_quantity must be a non-negative integer")
		} else {
			p.StockQuantity = qty
		}
	}

	p.IsAvailableInStore = parseImportBool(cell("is_available_in_store"))
	p.IsBestseller = parseImportBool(cell("is_bestseller"))
	p.IsAwardWinner = parseImportBool(cell("is_award_winner"))
	p.IsNewRelease = parseImportBool(cell("is_new_release"))
	p.IsComingSoon = parseImportBool(cell("is_coming_soon"))
	p.OnSale = parseImportBool(cell("on_sale"))

	if raw := cell("discount_percent"); raw != "" {
		pct, err := decimal.NewFromString(raw)
		if err != nil || pct.IsNegative() || pct.GreaterThan(decimal.NewFromInt(100)) {
			addErr("discount_percent", "discount_percent must be between 0 and 100")
		} else {
			p.DiscountPercent = decimal.NewNullDecimal(pct)
		}
	}

	dateFields := []struct {
		name string
		dest **time.Time
	}{
		{"discount_start_at", &p.DiscountStartAt},
		{"discount_end_at", &p.DiscountEndAt},
		{"publication_date", &p.PublicationDate},
	}
	for _, df := range dateFields {
		raw := cell(df.name)
		if raw == "" {
			continue
		}
		t, err := parseImportDate(raw)
		if err != nil {
			addErr(df.name, "must be an RFC3339 timestamp or YYYY-MM-DD date")
			continue
		}
		*df.dest = &t
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return p, nil
}

func optionalCell(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func parseImportBool(s string) bool {
	switch strings.ToLower(s) {
	case "true", "1", "yes", "y":
		return true
	default:
		return false
	}
}

func parseImportDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
