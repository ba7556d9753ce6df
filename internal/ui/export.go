package ui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"blockboard/internal/canvas"
)

// plainLines renders the canvas as it appears, without pointer or styling.
func (m *Model) plainLines() []string {
	size := m.canvasSize()
	return canvas.Render(m.store.Snapshot(), m.store.Size(), size.X, size.Y, canvas.Options{})
}

func exportName(ext string) string {
	return fmt.Sprintf("blockboard-%s.%s", time.Now().Format("20060102-150405"), ext)
}

func (m *Model) exportPNG() {
	m.clearMessages()
	path, err := m.config.GetSavePath(exportName("png"))
	if err != nil {
		m.errorMessage = fmt.Sprintf("Error exporting PNG: %v", err)
		return
	}
	if err := m.writeFile(path, func(f *os.File) error {
		return canvas.ExportPNG(f, m.store.Snapshot(), m.store.Size())
	}); err != nil {
		m.errorMessage = fmt.Sprintf("Error exporting PNG: %v", err)
		return
	}
	m.successMessage = fmt.Sprintf("Exported to %s", path)
}

func (m *Model) exportText() {
	m.clearMessages()
	path, err := m.config.GetSavePath(exportName("txt"))
	if err != nil {
		m.errorMessage = fmt.Sprintf("Error exporting text: %v", err)
		return
	}
	if err := m.writeFile(path, func(f *os.File) error {
		return canvas.ExportText(f, m.plainLines())
	}); err != nil {
		m.errorMessage = fmt.Sprintf("Error exporting text: %v", err)
		return
	}
	m.successMessage = fmt.Sprintf("Exported to %s", path)
}

func (m *Model) writeFile(path string, write func(*os.File) error) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(file); err != nil {
		file.Close()
		m.logger.Error("export failed", "path", path, "err", err)
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}
	m.logger.Info("exported", "path", path, "blocks", m.store.Snapshot().Len())
	return nil
}

func (m *Model) copyToClipboard() {
	m.clearMessages()
	var b strings.Builder
	if err := canvas.ExportText(&b, m.plainLines()); err != nil {
		m.errorMessage = fmt.Sprintf("Error copying: %v", err)
		return
	}
	if err := m.copyText(b.String()); err != nil {
		m.logger.Warn("clipboard unavailable", "err", err)
		m.errorMessage = fmt.Sprintf("Error copying: %v", err)
		return
	}
	m.successMessage = "Canvas copied to clipboard"
}
