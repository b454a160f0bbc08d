// Package tough renders the simulator's fixed-width input blocks (ELEME,
// CONNE, INCON) and parses them and the simulator's tabular output back.
// Column layouts follow the simulator's record format: 5-character labels,
// 10-character floating fields in the geometry blocks, 20-character fields
// in the initial-condition block.
package tough

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/gotough/gotough/grid"
	"github.com/gotough/gotough/labels"
	"github.com/gotough/gotough/mesh"
)

// ruler is the column guide appended to every block keyword line
const ruler = "----1----*----2----*----3----*----4----*----5----*----6----*----7----*----8"

func writeBlockHeader(w io.Writer, keyword string) error {
	_, err := fmt.Fprintf(w, "%-5s%s\n", keyword, ruler)
	return err
}

// WriteMesh renders the ELEME and CONNE blocks for a built grid. Element
// records appear in cell index order, connection records in the grid's
// deterministic connection order; both orders are part of the contract, as
// restart and initial-condition files reference the labels positionally.
func WriteMesh(w io.Writer, m *mesh.Mesh, g *grid.Grid, a *labels.Assigner) error {
	lbls, err := a.Labels(m.NumCells())
	if err != nil {
		return err
	}

	if err = writeBlockHeader(w, "ELEME"); err != nil {
		return err
	}
	for i := range m.Cells {
		volume := m.CellVolume(i)
		if m.IsBoundary(i) {
			// Boundary placeholders get zero volume, which the simulator
			// treats as an inactive, fixed-state element
			volume = 0
		}
		c := m.CellCentroid(i)
		_, err = fmt.Fprintf(w, "%-5s%-5.5s%10.4E%10s%10.3E%10.3E%10.3E\n",
			lbls[i], m.Material(i), volume, "", c.X, c.Y, c.Z)
		if err != nil {
			return err
		}
	}
	if _, err = fmt.Fprintln(w); err != nil {
		return err
	}

	if err = writeBlockHeader(w, "CONNE"); err != nil {
		return err
	}
	for _, conn := range g.Connections {
		_, err = fmt.Fprintf(w, "%s%s%5d%10.4E%10.4E%10.4E%10.3E\n",
			lbls[conn.Cell1], lbls[conn.Cell2], conn.Isot,
			conn.D1, conn.D2, conn.Area, conn.Beta)
		if err != nil {
			return err
		}
	}
	_, err = fmt.Fprintln(w)
	return err
}

// WriteIncon renders the INCON block: one record per cell carrying the
// explicitly set field values in field insertion order. Nothing is written
// for meshes without field data.
func WriteIncon(w io.Writer, m *mesh.Mesh, a *labels.Assigner) error {
	names := m.FieldNames()
	if len(names) == 0 {
		return nil
	}
	lbls, err := a.Labels(m.NumCells())
	if err != nil {
		return err
	}

	if err = writeBlockHeader(w, "INCON"); err != nil {
		return err
	}
	fields := make([][]float64, len(names))
	for j, name := range names {
		fields[j] = m.Field(name)
	}
	for i := range m.Cells {
		if _, err = fmt.Fprintf(w, "%-5s", lbls[i]); err != nil {
			return err
		}
		for j := range fields {
			if _, err = fmt.Fprintf(w, "%20.4E", fields[j][i]); err != nil {
				return err
			}
		}
		if _, err = fmt.Fprintln(w); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintln(w)
	return err
}

// writeFile opens path, runs render against a buffered writer, and flushes
// and closes on every exit path. A file left behind by a failed render is
// partial and unusable; callers delete and retry rather than resume.
func writeFile(path string, render func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	defer func() {
		if flushErr := w.Flush(); err == nil {
			err = flushErr
		}
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()
	return render(w)
}

// WriteMeshFile writes the ELEME/CONNE blocks to a MESH file
func WriteMeshFile(path string, m *mesh.Mesh, g *grid.Grid, a *labels.Assigner) error {
	return writeFile(path, func(w io.Writer) error {
		return WriteMesh(w, m, g, a)
	})
}

// WriteInconFile writes the INCON block to a file
func WriteInconFile(path string, m *mesh.Mesh, a *labels.Assigner) error {
	return writeFile(path, func(w io.Writer) error {
		return WriteIncon(w, m, a)
	})
}
