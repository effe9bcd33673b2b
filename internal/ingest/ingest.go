package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/koncoweb/petnexus-sub000/internal/domain"
	"github.com/koncoweb/petnexus-sub000/internal/repository"
)

// SnapshotIngestService downloads inventory snapshot CSVs from Drive and
// replaces the per-store inventory state with their contents.
type SnapshotIngestService struct {
	drive     *DriveClient
	inventory repository.InventoryProvider
}

func NewSnapshotIngestService(drive *DriveClient, inventory repository.InventoryProvider) *SnapshotIngestService {
	return &SnapshotIngestService{
		drive:     drive,
		inventory: inventory,
	}
}

// IngestFile streams one Drive CSV through the parser and replaces each
// affected store's snapshot. A parse error anywhere in the file aborts the
// whole ingestion so a store is never left with a partial snapshot.
func (s *SnapshotIngestService) IngestFile(ctx context.Context, fileID string) error {
	pr, pw := io.Pipe()
	go func() {
		err := s.drive.DownloadFile(fileID, pw)
		pw.CloseWithError(err)
	}()

	byStore, err := ParseInventoryCSV(pr)
	if err != nil {
		return fmt.Errorf("failed to parse snapshot file %s: %w", fileID, err)
	}

	for storeID, lines := range byStore {
		if err := s.inventory.ReplaceSnapshot(ctx, storeID, lines); err != nil {
			return fmt.Errorf("failed to replace snapshot for store %s: %w", storeID, err)
		}
		log.Info().
			Str("store_id", storeID).
			Int("lines", len(lines)).
			Msg("inventory snapshot replaced")
	}

	return nil
}

// ParseInventoryCSV reads snapshot rows and groups them by store. The
// header row names the columns; order does not matter. Numeric columns
// accept float strings like "1.0", which some spreadsheet exports produce.
func ParseInventoryCSV(r io.Reader) (map[string][]domain.InventoryLine, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	colMap := make(map[string]int)
	for i, col := range header {
		colMap[strings.TrimSpace(col)] = i
	}

	requiredCols := []string{"store_id", "product_id", "current_stock", "minimum_stock"}
	for _, col := range requiredCols {
		if _, ok := colMap[col]; !ok {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	byStore := make(map[string][]domain.InventoryLine)
	row := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}
		row++

		line, err := parseRow(record, colMap)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}

		byStore[line.StoreID] = append(byStore[line.StoreID], line)
	}

	return byStore, nil
}

func parseRow(record []string, colMap map[string]int) (domain.InventoryLine, error) {
	getValue := func(colName string) string {
		if idx, ok := colMap[colName]; ok && idx < len(record) {
			return strings.TrimSpace(record[idx])
		}
		return ""
	}

	getInt := func(colName string) int {
		val := getValue(colName)
		if val == "" {
			return 0
		}
		// spreadsheet exports write integers as "12.0"
		f, _ := strconv.ParseFloat(val, 64)
		return int(f)
	}

	line := domain.InventoryLine{
		StoreID:       getValue("store_id"),
		ProductID:     getValue("product_id"),
		VariantID:     getValue("variant_id"),
		BrandID:       getValue("brand_id"),
		CurrentStock:  getInt("current_stock"),
		MinimumStock:  getInt("minimum_stock"),
		MaximumStock:  getInt("maximum_stock"),
		ReservedStock: getInt("reserved_stock"),
	}

	if line.StoreID == "" {
		return domain.InventoryLine{}, fmt.Errorf("empty store_id")
	}
	if line.ProductID == "" {
		return domain.InventoryLine{}, fmt.Errorf("empty product_id")
	}
	if line.CurrentStock < 0 || line.MinimumStock < 0 {
		return domain.InventoryLine{}, fmt.Errorf("negative stock values for product %s", line.ProductID)
	}

	return line, nil
}
