package tzero

import (
	"bytes"
	"encoding/binary"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

// this file writes order batches in the two formats the terminal imports:
// a UTF-8 CSV for review and a dBase III DBF for the PB import dialog.

// ExportOrdersCSV writes the batch as CSV with the terminal's Chinese
// headers. The byte order mark keeps spreadsheet tools from garbling the
// Chinese columns.
func ExportOrdersCSV(w io.Writer, b *OrderBatch) error {
	if _, err := io.WriteString(w, "\xEF\xBB\xBF"); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"批次号", "委托序号", "资金账号", "账户类型", "市场", "证券代码", "证券名称",
		"委托方向", "价格类型", "委托价格", "委托数量", "保护限价",
		"委托日期", "委托时间", "来源", "关联编号", "备注",
	}); err != nil {
		return err
	}
	for _, o := range b.Orders() {
		if err := cw.Write([]string{
			o.BatchNo,
			fmt.Sprintf("%d", o.OrderNo),
			o.AccountID,
			o.AccountType,
			o.MarketID,
			o.StockCode,
			o.StockName,
			o.Side.String(),
			o.PriceType.String(),
			o.Price.Decimal().StringFixed(4),
			fmt.Sprintf("%d", o.Volume),
			o.ProtectPrice.Decimal().StringFixed(4),
			o.OrderDate.Compact(),
			o.OrderTime,
			o.Source,
			o.RefID,
			o.Note,
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// dbfField describes one column of the batch file.
type dbfField struct {
	name    string
	typ     byte // 'C' character or 'N' numeric
	length  byte
	decimal byte
}

// dbfLayout is the terminal's batch column set. Names are at most 10 ASCII
// characters, the DBF limit.
var dbfLayout = []dbfField{
	{"BATCHNO", 'C', 8, 0},
	{"ORDERNO", 'N', 8, 0},
	{"ACCOUNTID", 'C', 16, 0},
	{"ACCTTYPE", 'C', 4, 0},
	{"MARKETID", 'C', 4, 0},
	{"STOCKCODE", 'C', 8, 0},
	{"STOCKNAME", 'C', 16, 0},
	{"ORDERTYPE", 'C', 1, 0},
	{"PRICETYPE", 'C', 1, 0},
	{"PRICE", 'N', 12, 4},
	{"VOLUME", 'N', 12, 0},
	{"MODEPRICE", 'N', 12, 4},
	{"ORDERDATE", 'C', 8, 0},
	{"ORDERTIME", 'C', 8, 0},
	{"SOURCE", 'C', 8, 0},
	{"REFID", 'C', 32, 0},
	{"NOTE", 'C', 32, 0},
}

// ExportOrdersDBF writes the batch as a dBase III file. Text cells are GBK
// encoded, the encoding the terminal expects.
func ExportOrdersDBF(w io.Writer, b *OrderBatch) error {
	orders := b.Orders()

	recordSize := 1 // deletion flag
	for _, f := range dbfLayout {
		recordSize += int(f.length)
	}
	headerSize := 32 + 32*len(dbfLayout) + 1

	header := make([]byte, 32)
	header[0] = 0x03 // dBase III, no memo
	now := time.Now()
	header[1] = byte(now.Year() - 1900)
	header[2] = byte(now.Month())
	header[3] = byte(now.Day())
	binary.LittleEndian.PutUint32(header[4:8], uint32(len(orders)))
	binary.LittleEndian.PutUint16(header[8:10], uint16(headerSize))
	binary.LittleEndian.PutUint16(header[10:12], uint16(recordSize))
	if _, err := w.Write(header); err != nil {
		return err
	}

	for _, f := range dbfLayout {
		desc := make([]byte, 32)
		copy(desc[0:11], f.name)
		desc[11] = f.typ
		desc[16] = f.length
		desc[17] = f.decimal
		if _, err := w.Write(desc); err != nil {
			return err
		}
	}
	if _, err := w.Write([]byte{0x0D}); err != nil {
		return err
	}

	for _, o := range orders {
		record, err := dbfRecord(o)
		if err != nil {
			return fmt.Errorf("order %d: %w", o.OrderNo, err)
		}
		if _, err := w.Write(record); err != nil {
			return err
		}
	}
	_, err := w.Write([]byte{0x1A})
	return err
}

func dbfRecord(o Order) ([]byte, error) {
	cells := []string{
		o.BatchNo,
		fmt.Sprintf("%d", o.OrderNo),
		o.AccountID,
		o.AccountType,
		o.MarketID,
		o.StockCode,
		o.StockName,
		o.Side.String(),
		o.PriceType.String(),
		o.Price.Decimal().StringFixed(4),
		fmt.Sprintf("%d", o.Volume),
		o.ProtectPrice.Decimal().StringFixed(4),
		o.OrderDate.Compact(),
		o.OrderTime,
		o.Source,
		o.RefID,
		o.Note,
	}

	var buf bytes.Buffer
	buf.WriteByte(0x20) // not deleted
	for i, f := range dbfLayout {
		cell, err := dbfCell(cells[i], f)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.name, err)
		}
		buf.Write(cell)
	}
	return buf.Bytes(), nil
}

// dbfCell encodes one value into its fixed-width slot: character cells are
// GBK, left-justified, space padded; numeric cells are right-justified.
func dbfCell(value string, f dbfField) ([]byte, error) {
	raw := []byte(value)
	if f.typ == 'C' {
		encoded, _, err := transform.Bytes(simplifiedchinese.GBK.NewEncoder(), raw)
		if err != nil {
			return nil, fmt.Errorf("cannot encode %q as GBK: %w", value, err)
		}
		raw = encoded
	}
	if len(raw) > int(f.length) {
		return nil, fmt.Errorf("value %q does not fit in %d bytes", value, f.length)
	}
	pad := strings.Repeat(" ", int(f.length)-len(raw))
	if f.typ == 'N' {
		return append([]byte(pad), raw...), nil
	}
	return append(raw, []byte(pad)...), nil
}
