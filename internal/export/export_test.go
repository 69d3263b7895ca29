package export

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/SAP-F-2025/trainee-dashboard/internal/models"
)

func readRows(t *testing.T, data []byte, sheet string) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()
	if got := f.GetSheetList(); !reflect.DeepEqual(got, []string{sheet}) {
		t.Errorf("sheets = %v", got)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	return rows
}

func TestStagiairesWorkbook(t *testing.T) {
	data, err := Stagiaires([]models.Stagiaire{{
		MLE:         "M1",
		CIN:         "0123",
		FirstName:   "Ali",
		LastName:    "Ben Salah",
		DateOfBirth: "2001-05-04T00:00:00.000Z",
		Brigade:     &models.Brigade{BrigadeName: &models.BrigadeName{Name: "Alpha"}},
	}})
	if err != nil {
		t.Fatal(err)
	}

	rows := readRows(t, data, "Stagiaires")
	if len(rows) != 2 {
		t.Fatalf("rows = %v", rows)
	}
	if rows[0][0] != "MLE" || rows[0][10] != "Brigade" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][0] != "M1" || rows[1][5] != "2001-05-04" || rows[1][10] != "Alpha" {
		t.Errorf("row = %v", rows[1])
	}
}

func TestBrigadesWorkbookUsesUTCYear(t *testing.T) {
	data, err := Brigades([]models.Brigade{{
		Year:        "2023-12-31T23:00:00.000Z",
		Effectif:    30,
		BrigadeName: &models.BrigadeName{Name: "B7"},
	}})
	if err != nil {
		t.Fatal(err)
	}
	rows := readRows(t, data, "Brigades")
	if len(rows) != 2 || rows[1][0] != "B7" || rows[1][1] != "2023" || rows[1][2] != "30" {
		t.Errorf("rows = %v", rows)
	}
}

func TestEmptyWorkbookHasHeader(t *testing.T) {
	data, err := Permissions(nil)
	if err != nil {
		t.Fatal(err)
	}
	rows := readRows(t, data, "Permissions")
	if len(rows) != 1 || len(rows[0]) != len(PermissionColumns) {
		t.Errorf("rows = %v", rows)
	}
}
