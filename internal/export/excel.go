// Package export maps fetched entity lists to flat spreadsheet rows and
// writes .xlsx files. Rows arrive already normalized: category names are
// resolved here against the fetched category list, never left as bare ids.
package export

import (
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"kale-admin/internal/model"
)

// Column headers match the ones the café's staff already know from the
// service's own exports.
var (
	itemHeader     = []any{"#", "الاسم", "الفئة", "السعر", "الوصف", "تاريخ الإنشاء", "آخر تحديث"}
	categoryHeader = []any{"#", "اسم الفئة", "النوع", "ترتيب العرض", "الحالة", "تاريخ الإنشاء", "آخر تحديث"}
	imageHeader    = []any{"#", "اسم الصورة", "الفئة", "مسار الملف", "الحجم (بايت)", "تاريخ الرفع", "آخر تحديث"}

	itemColWidths     = []float64{5, 25, 20, 15, 30, 15, 15}
	categoryColWidths = []float64{5, 25, 15, 12, 12, 15, 15}
	imageColWidths    = []float64{5, 25, 20, 30, 15, 15, 15}
)

// Filename appends the date stamp the original exports carry:
// "<base>-<yyyy-mm-dd>.xlsx".
func Filename(base string, now time.Time) string {
	return fmt.Sprintf("%s-%s.xlsx", base, now.Format("2006-01-02"))
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64) + " ل.ت"
}

// ItemRows flattens menu items into export rows.
func ItemRows(items []model.MenuItem, cats []model.Category) [][]any {
	rows := make([][]any, 0, len(items))
	for i, it := range items {
		desc := it.Description
		if desc == "" {
			desc = "لا يوجد وصف"
		}
		catName := it.Category.DisplayName(cats)
		if catName == "" {
			catName = "غير محدد"
		}
		rows = append(rows, []any{
			i + 1,
			it.Name,
			catName,
			formatPrice(it.Price),
			desc,
			formatDate(it.CreatedAt),
			formatDate(it.UpdatedAt),
		})
	}
	return rows
}

// CategoryRows flattens categories into export rows.
func CategoryRows(cats []model.Category) [][]any {
	rows := make([][]any, 0, len(cats))
	for i, c := range cats {
		status := "غير نشط"
		if c.IsActive {
			status = "نشط"
		}
		rows = append(rows, []any{
			i + 1,
			c.Name,
			model.ArabicKindName(c.Type),
			c.Order,
			status,
			formatDate(c.CreatedAt),
			formatDate(c.UpdatedAt),
		})
	}
	return rows
}

// ImageRows flattens image assets into export rows.
func ImageRows(imgs []model.ImageAsset, cats []model.Category) [][]any {
	rows := make([][]any, 0, len(imgs))
	for i, img := range imgs {
		name := img.Name
		if name == "" {
			name = img.StoredFilename()
		}
		catName := img.Category.DisplayName(cats)
		if catName == "" {
			catName = "غير محدد"
		}
		size := ""
		if img.Size > 0 {
			size = strconv.FormatInt(img.Size, 10)
		}
		rows = append(rows, []any{
			i + 1,
			name,
			catName,
			img.StoredFilename(),
			size,
			formatDate(img.CreatedAt),
			formatDate(img.UpdatedAt),
		})
	}
	return rows
}

// WriteItems writes one sheet of menu-item rows to path.
func WriteItems(path, sheet string, items []model.MenuItem, cats []model.Category) error {
	return writeSheet(path, sheet, itemHeader, ItemRows(items, cats), itemColWidths)
}

// WriteCategories writes the category sheet ("الفئات") to path.
func WriteCategories(path string, cats []model.Category) error {
	return writeSheet(path, "الفئات", categoryHeader, CategoryRows(cats), categoryColWidths)
}

// WriteImages writes one sheet of image rows to path.
func WriteImages(path, sheet string, imgs []model.ImageAsset, cats []model.Category) error {
	return writeSheet(path, "صور "+sheet, imageHeader, ImageRows(imgs, cats), imageColWidths)
}

func writeSheet(path, sheet string, header []any, rows [][]any, widths []float64) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := row
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}
