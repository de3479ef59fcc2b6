package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/parquet-go/parquet-go"
	"github.com/publu/l2-lxp-liquidity-reward-sporker/internal/common"
	"github.com/rs/zerolog/log"
)

const (
	FormatCSV     = "csv"
	FormatParquet = "parquet"
)

var Header = []string{"block_number", "timestamp", "user_address", "token_address", "token_balance", "token_symbol", "usd_price"}

type ParquetRow struct {
	BlockNumber  uint64  `parquet:"block_number"`
	Timestamp    uint64  `parquet:"timestamp"`
	UserAddress  string  `parquet:"user_address"`
	TokenAddress string  `parquet:"token_address"`
	TokenBalance string  `parquet:"token_balance"`
	TokenSymbol  string  `parquet:"token_symbol"`
	UsdPrice     float64 `parquet:"usd_price"`
}

var writerOptions = []parquet.WriterOption{
	parquet.Compression(&parquet.Zstd),
	parquet.DataPageStatistics(true),
}

func WriteCSV(w io.Writer, rows []common.OutputRow) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			strconv.FormatUint(row.BlockNumber, 10),
			strconv.FormatUint(row.Timestamp, 10),
			row.UserAddress,
			row.TokenAddress,
			row.TokenBalance.String(),
			row.TokenSymbol,
			row.UsdPrice.StringFixed(2),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func WriteParquet(w io.Writer, rows []common.OutputRow) error {
	parquetRows := make([]ParquetRow, 0, len(rows))
	for _, row := range rows {
		parquetRows = append(parquetRows, ParquetRow{
			BlockNumber:  row.BlockNumber,
			Timestamp:    row.Timestamp,
			UserAddress:  row.UserAddress,
			TokenAddress: row.TokenAddress,
			TokenBalance: row.TokenBalance.String(),
			TokenSymbol:  row.TokenSymbol,
			UsdPrice:     row.UsdPrice.InexactFloat64(),
		})
	}

	writer := parquet.NewGenericWriter[ParquetRow](w, writerOptions...)
	if _, err := writer.Write(parquetRows); err != nil {
		return fmt.Errorf("failed to write parquet data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}

// SaveReport writes rows to path. The file is only created once the rows are known,
// a failed run leaves no partial report behind.
func SaveReport(path string, format string, rows []common.OutputRow) error {
	var write func(io.Writer, []common.OutputRow) error
	switch format {
	case FormatCSV, "":
		write = WriteCSV
	case FormatParquet:
		write = WriteParquet
	default:
		return fmt.Errorf("unsupported report format %q", format)
	}

	tmpPath := path + ".tmp"
	file, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	if err := write(file, rows); err != nil {
		file.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := file.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close report file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to move report into place: %w", err)
	}

	log.Info().Str("path", path).Str("format", format).Int("rows", len(rows)).Msg("Report written")
	return nil
}
