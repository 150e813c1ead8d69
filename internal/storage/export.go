package storage

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jeanpaul/assistant/internal/contacts"
	"github.com/jeanpaul/assistant/internal/notes"
)

const (
	contactsSheet = "Contacts"
	notesSheet    = "Notes"
)

// ExportXLSX writes contacts and notes to a spreadsheet, one sheet each.
func ExportXLSX(path string, book *contacts.AddressBook, nb *notes.Book) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", contactsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeRows(f, contactsSheet, []string{"Name", "Phones", "Email", "Address", "Birthday"}, contactRows(book)); err != nil {
		return err
	}

	if nb != nil {
		if _, err := f.NewSheet(notesSheet); err != nil {
			return fmt.Errorf("add sheet: %w", err)
		}
		if err := writeRows(f, notesSheet, []string{"Contact", "ID", "Text", "Tags"}, noteRows(nb)); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, header []string, rows [][]string) error {
	all := append([][]string{header}, rows...)
	for i, row := range all {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	last, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", last, 24)
}

func contactRows(book *contacts.AddressBook) [][]string {
	rows := make([][]string, 0, book.Len())
	for _, rec := range book.Records() {
		email, _ := rec.Email()
		addr, _ := rec.Address()
		bday := ""
		if b, ok := rec.Birthday(); ok {
			bday = b.String()
		}
		rows = append(rows, []string{rec.Name(), strings.Join(rec.Phones(), "; "), email, addr, bday})
	}
	return rows
}

func noteRows(nb *notes.Book) [][]string {
	var rows [][]string
	for _, c := range nb.Contacts() {
		for _, n := range nb.Get(c) {
			rows = append(rows, []string{c, n.ShortID(), n.Text, strings.Join(n.Tags, ", ")})
		}
	}
	return rows
}
