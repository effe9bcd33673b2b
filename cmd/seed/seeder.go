// cmd/seed/seeder.go
package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
)

// seedTable upserts the named columns from a CSV file. Rows conflict on the
// id column; existing rows are updated in place.
func seedTable(ctx context.Context, tx *sql.Tx, tableName string, columns []string, filePath string) error {
	log.Printf("Seeding %s from %s\n", tableName, filePath)

	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read CSV header: %w", err)
	}

	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (id) DO UPDATE SET %s",
		tableName,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
		buildUpdateClause(columns),
	)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read CSV record: %w", err)
		}

		args := make([]interface{}, len(columns))
		for i, col := range columns {
			idx := columnIndex(header, col)
			if idx < 0 || idx >= len(record) {
				return fmt.Errorf("missing column %q in %s", col, filePath)
			}
			args[i] = record[idx]
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to insert record into %s: %w", tableName, err)
		}
	}

	log.Printf("Successfully seeded %s\n", tableName)
	return nil
}

func seedSupplierProducts(ctx context.Context, tx *sql.Tx, filePath string) error {
	log.Printf("Seeding supplier_products from %s\n", filePath)

	rows, header, err := readCSV(filePath)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO supplier_products (supplier_id, product_id, variant_id, unit_cost)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (supplier_id, product_id, variant_id) DO UPDATE SET unit_cost = EXCLUDED.unit_cost`

	for _, record := range rows {
		cost, err := strconv.ParseFloat(field(record, header, "unit_cost"), 64)
		if err != nil {
			return fmt.Errorf("invalid unit_cost for product %s: %w", field(record, header, "product_id"), err)
		}

		if _, err := tx.ExecContext(ctx, query,
			field(record, header, "supplier_id"),
			field(record, header, "product_id"),
			field(record, header, "variant_id"),
			cost,
		); err != nil {
			return fmt.Errorf("failed to insert supplier product: %w", err)
		}
	}

	log.Println("Successfully seeded supplier_products")
	return nil
}

func seedInventory(ctx context.Context, tx *sql.Tx, filePath string) error {
	log.Printf("Seeding store_inventory from %s\n", filePath)

	rows, header, err := readCSV(filePath)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO store_inventory
			(store_id, product_id, variant_id, current_stock, minimum_stock, maximum_stock, reserved_stock, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		ON CONFLICT (store_id, product_id, variant_id) DO UPDATE SET
			current_stock = EXCLUDED.current_stock,
			minimum_stock = EXCLUDED.minimum_stock,
			maximum_stock = EXCLUDED.maximum_stock,
			reserved_stock = EXCLUDED.reserved_stock,
			updated_at = NOW()`

	for _, record := range rows {
		if _, err := tx.ExecContext(ctx, query,
			field(record, header, "store_id"),
			field(record, header, "product_id"),
			field(record, header, "variant_id"),
			intField(record, header, "current_stock"),
			intField(record, header, "minimum_stock"),
			intField(record, header, "maximum_stock"),
			intField(record, header, "reserved_stock"),
		); err != nil {
			return fmt.Errorf("failed to insert inventory line: %w", err)
		}
	}

	log.Println("Successfully seeded store_inventory")
	return nil
}

func seedPromotions(ctx context.Context, tx *sql.Tx, filePath string) error {
	log.Printf("Seeding promotions from %s\n", filePath)

	rows, header, err := readCSV(filePath)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO promotions
			(id, supplier_id, scope, target_id, discount_type, discount_value,
			 minimum_quantity, start_date, end_date, max_usage, current_usage, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF(NULLIF($10, ''), '0')::int, $11, NOW())
		ON CONFLICT (id) DO UPDATE SET
			discount_value = EXCLUDED.discount_value,
			start_date = EXCLUDED.start_date,
			end_date = EXCLUDED.end_date`

	for _, record := range rows {
		value, err := strconv.ParseFloat(field(record, header, "discount_value"), 64)
		if err != nil {
			return fmt.Errorf("invalid discount_value for promotion %s: %w", field(record, header, "id"), err)
		}

		if _, err := tx.ExecContext(ctx, query,
			field(record, header, "id"),
			nullIfEmpty(field(record, header, "supplier_id")),
			field(record, header, "scope"),
			field(record, header, "target_id"),
			field(record, header, "discount_type"),
			value,
			intField(record, header, "minimum_quantity"),
			field(record, header, "start_date"),
			field(record, header, "end_date"),
			field(record, header, "max_usage"),
			intField(record, header, "current_usage"),
		); err != nil {
			return fmt.Errorf("failed to insert promotion: %w", err)
		}
	}

	log.Println("Successfully seeded promotions")
	return nil
}

func readCSV(filePath string) ([][]string, []string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read CSV record: %w", err)
		}
		rows = append(rows, record)
	}

	return rows, header, nil
}

func columnIndex(header []string, name string) int {
	for i, col := range header {
		if strings.TrimSpace(col) == name {
			return i
		}
	}
	return -1
}

func field(record, header []string, name string) string {
	idx := columnIndex(header, name)
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func intField(record, header []string, name string) int {
	v, _ := strconv.Atoi(field(record, header, name))
	return v
}

// nullIfEmpty returns NULL for empty strings so optional foreign keys stay
// unset instead of failing the constraint.
func nullIfEmpty(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func buildUpdateClause(columns []string) string {
	var parts []string
	for _, col := range columns {
		if col == "id" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
	}
	return strings.Join(parts, ", ")
}
