// seed genera un script SQL para poblar el catálogo de productos a partir de un
// CSV exportado del sistema anterior (columnas: sku,name,category,price,stock,image_url).
// Muchos exportes vienen en Windows-1252/ISO-8859-1; se decodifican a UTF-8.
//
// Uso: go run ./cmd/seed [ruta/productos.csv]
// Por defecto busca productos.csv en el directorio actual.
// Escribe: internal/infrastructure/postgres/migrations/002_seed_products.sql
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type productRow struct {
	sku, name, category, price, imageURL string
	stock                                int64
}

func main() {
	csvPath := "productos.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	// Si el archivo no es UTF-8 válido asumimos Windows-1252 (superconjunto de
	// ISO-8859-1 en los bytes que usan estos exportes).
	raw, err := os.ReadFile(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}
	var r *csv.Reader
	if utf8.Valid(raw) {
		r = csv.NewReader(strings.NewReader(string(raw)))
	} else {
		r = csv.NewReader(transform.NewReader(strings.NewReader(string(raw)), charmap.Windows1252.NewDecoder()))
	}
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Decodificar CSV: %v\n", err)
		os.Exit(1)
	}
	if len(records) < 2 {
		fmt.Fprintln(os.Stderr, "El CSV no tiene filas de datos")
		os.Exit(1)
	}

	var rows []productRow
	for i, rec := range records[1:] { // la primera fila es el encabezado
		if len(rec) < 5 {
			fmt.Fprintf(os.Stderr, "Fila %d: se esperaban al menos 5 columnas\n", i+2)
			os.Exit(1)
		}
		price, err := decimal.NewFromString(strings.TrimSpace(rec[3]))
		if err != nil || price.IsNegative() {
			fmt.Fprintf(os.Stderr, "Fila %d: precio inválido %q\n", i+2, rec[3])
			os.Exit(1)
		}
		stock, err := parseStock(rec[4])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Fila %d: stock inválido %q\n", i+2, rec[4])
			os.Exit(1)
		}
		row := productRow{
			sku:      strings.TrimSpace(rec[0]),
			name:     strings.TrimSpace(rec[1]),
			category: strings.TrimSpace(rec[2]),
			price:    price.StringFixed(2),
			stock:    stock,
		}
		if len(rec) > 5 {
			row.imageURL = strings.TrimSpace(rec[5])
		}
		if row.sku == "" || row.name == "" {
			fmt.Fprintf(os.Stderr, "Fila %d: sku y name son obligatorios\n", i+2)
			os.Exit(1)
		}
		rows = append(rows, row)
	}

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "002_seed_products.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	out.WriteString("-- Catálogo inicial de productos\n")
	out.WriteString("-- Generado desde " + filepath.Base(csvPath) + "\n\n")
	for _, row := range rows {
		fmt.Fprintf(out, "INSERT INTO products (id, sku, name, category, price, stock_quantity, image_url)\n")
		fmt.Fprintf(out, "VALUES (gen_random_uuid(), '%s', '%s', '%s', %s, %d, %s)\n",
			escapeSQL(row.sku), escapeSQL(row.name), escapeSQL(row.category),
			row.price, row.stock, sqlString(row.imageURL))
		out.WriteString("ON CONFLICT (sku) DO UPDATE SET name = EXCLUDED.name, category = EXCLUDED.category, price = EXCLUDED.price, image_url = EXCLUDED.image_url;\n")
	}

	fmt.Printf("Generado %s: %d productos\n", outPath, len(rows))
}

func parseStock(s string) (int64, error) {
	var n int64
	_, err := fmt.Sscanf(strings.TrimSpace(s), "%d", &n)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("stock inválido: %s", s)
	}
	return n, nil
}

func sqlString(s string) string {
	if s == "" {
		return "NULL"
	}
	return "'" + escapeSQL(s) + "'"
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
