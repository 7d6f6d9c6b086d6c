// seed_sectors carga el catálogo oficial de instituciones (XML) como sectores.
//
// Uso: go run ./cmd/seed_sectors [ruta/Instituciones.xml]
// Por defecto busca Instituciones.xml en el directorio actual. Los sectores
// cuyo nombre ya existe (sin distinguir mayúsculas ni acentos) se omiten, así
// que puede ejecutarse varias veces.
package main

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Permuta-api/internal/application/dto"
	"github.com/jhoicas/Permuta-api/internal/application/usecase"
	"github.com/jhoicas/Permuta-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Permuta-api/pkg/config"
	"github.com/jhoicas/Permuta-api/pkg/logger"
	"github.com/jhoicas/Permuta-api/pkg/textfold"
)

type catalogo struct {
	Instituciones []institucion `xml:"institucion"`
}

type institucion struct {
	Nombre       string `xml:"nombre,attr"`
	Ciudad       string `xml:"ciudad,attr"`
	Direccion    string `xml:"direccion,attr"`
	CodigoPostal string `xml:"codigoPostal,attr"`
	Telefono     string `xml:"telefono,attr"`
	Email        string `xml:"email,attr"`
	Descripcion  string `xml:"descripcion"`
}

func main() {
	xmlPath := "Instituciones.xml"
	if len(os.Args) > 1 {
		xmlPath = os.Args[1]
	}
	f, err := os.Open(xmlPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir XML: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	items, err := parseCatalog(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Decodificar XML: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	sectorUC := usecase.NewSectorUseCase(postgres.NewSectorRepository(pool), postgres.NewTxRunner(pool))
	existing, err := sectorUC.List(ctx, "")
	if err != nil {
		log.Fatal().Err(err).Msg("listar sectores")
	}
	seen := make(map[string]bool, len(existing))
	for _, s := range existing {
		seen[textfold.Fold(s.Name)] = true
	}

	var created, skipped int
	for _, in := range items {
		key := textfold.Fold(in.Name)
		if seen[key] {
			skipped++
			continue
		}
		if err := in.Validate(); err != nil {
			log.Warn().Err(err).Str("nombre", in.Name).Msg("institución inválida, se omite")
			skipped++
			continue
		}
		// sin sesión: la actividad sector_created queda sin usuario
		if _, err := sectorUC.Create(ctx, nil, in); err != nil {
			log.Fatal().Err(err).Str("nombre", in.Name).Msg("crear sector")
		}
		seen[key] = true
		created++
	}

	fmt.Printf("Catálogo %s: %d sectores creados, %d omitidos\n", xmlPath, created, skipped)
}

// parseCatalog decodifica el XML (UTF-8 o ISO-8859-1) en solicitudes de alta.
// Las entradas sin nombre se descartan.
func parseCatalog(r io.Reader) ([]dto.CreateSectorRequest, error) {
	var c catalogo
	dec := xml.NewDecoder(r)
	dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		if strings.EqualFold(charset, "ISO-8859-1") || strings.EqualFold(charset, "ISO8859-1") {
			return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
		}
		return input, nil
	}
	if err := dec.Decode(&c); err != nil {
		return nil, err
	}

	out := make([]dto.CreateSectorRequest, 0, len(c.Instituciones))
	for _, v := range c.Instituciones {
		name := strings.TrimSpace(v.Nombre)
		if name == "" {
			continue
		}
		out = append(out, dto.CreateSectorRequest{
			Name:        name,
			Description: optional(v.Descripcion),
			Address:     optional(v.Direccion),
			City:        optional(v.Ciudad),
			ZipCode:     optional(v.CodigoPostal),
			Phone:       optional(v.Telefono),
			Email:       optional(v.Email),
		})
	}
	return out, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
