// Package importer loads catalog CSV files into the product tables. It
// backs the bulk-import command used to populate a fresh store.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"storefront/internal/domain"
)

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

type CategoryWriter interface {
	Upsert(ctx context.Context, category domain.Category) (*domain.Category, error)
}

// CSVImporter reads catalog rows and upserts categories and products.
// Expected header: key,sku,name,description,category_key,category_name,price_cents,currency
type CSVImporter struct {
	reader     *csv.Reader
	products   ProductWriter
	categories CategoryWriter
}

func NewCSVImporter(r io.Reader, products ProductWriter, categories CategoryWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:     csvr,
		products:   products,
		categories: categories,
	}
}

type csvRow struct {
	Key          string
	SKU          string
	Name         string
	Desc         string
	CategoryKey  string
	CategoryName string
	Cents        int64
	Currency     string
}

// Run parses CSV rows and upserts products, creating categories as they
// first appear. Returns the number of imported products.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)

	// Category key -> id, resolved once per file.
	categoryIDs := map[string]string{}
	imported := 0

	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}

		row, err := parseRow(record, index)
		if err != nil {
			return imported, err
		}
		if row == nil {
			continue
		}

		categoryID := ""
		if row.CategoryKey != "" {
			id, ok := categoryIDs[row.CategoryKey]
			if !ok {
				name := row.CategoryName
				if name == "" {
					name = row.CategoryKey
				}
				cat, err := i.categories.Upsert(ctx, domain.Category{Key: row.CategoryKey, Name: name})
				if err != nil {
					return imported, fmt.Errorf("upsert category %s: %w", row.CategoryKey, err)
				}
				id = cat.ID
				categoryIDs[row.CategoryKey] = id
			}
			categoryID = id
		}

		_, err = i.products.Upsert(ctx, domain.Product{
			Key:         row.Key,
			SKU:         row.SKU,
			Name:        row.Name,
			Description: row.Desc,
			CategoryID:  &categoryID,
			PriceCents:  row.Cents,
			Currency:    row.Currency,
		})
		if err != nil {
			return imported, fmt.Errorf("upsert product %s: %w", row.Key, err)
		}
		imported++
	}

	return imported, nil
}

func headerIndex(headers []string) map[string]int {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[strings.TrimSpace(strings.ToLower(h))] = i
	}
	return index
}

func field(record []string, index map[string]int, name string) string {
	i, ok := index[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func parseRow(record []string, index map[string]int) (*csvRow, error) {
	key := field(record, index, "key")
	sku := field(record, index, "sku")
	if key == "" && sku == "" {
		return nil, nil
	}
	if key == "" || sku == "" {
		return nil, fmt.Errorf("row missing key or sku: %v", record)
	}

	cents := int64(0)
	if raw := field(record, index, "price_cents"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse price_cents for %s: %w", key, err)
		}
		cents = parsed
	}

	currency := field(record, index, "currency")
	if currency == "" {
		currency = "USD"
	}

	name := field(record, index, "name")
	if name == "" {
		name = key
	}

	return &csvRow{
		Key:          key,
		SKU:          sku,
		Name:         name,
		Desc:         field(record, index, "description"),
		CategoryKey:  field(record, index, "category_key"),
		CategoryName: field(record, index, "category_name"),
		Cents:        cents,
		Currency:     currency,
	}, nil
}
