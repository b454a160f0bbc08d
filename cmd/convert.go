/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/gotough/gotough/InputParameters"
	"github.com/gotough/gotough/grid"
	"github.com/gotough/gotough/labels"
	"github.com/gotough/gotough/mesh"
	"github.com/gotough/gotough/tough"
)

type ConvertModel struct {
	MeshFile   string
	ParamsFile string
	OutFile    string
	InconFile  string
	Stats      bool
	Profile    bool
}

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a mesh to simulator ELEME/CONNE/INCON files",
	Long: `
Reads a mesh exchange document (points, cells, materials, field data),
derives the finite-volume connections, and writes the simulator's MESH
file. An INCON file is written when the mesh carries field data and an
INCON path is given.

gotough convert --mesh mesh.yaml --out MESH --incon INCON`,
	Run: func(cmd *cobra.Command, args []string) {
		cm := &ConvertModel{}
		cm.MeshFile, _ = cmd.Flags().GetString("mesh")
		cm.ParamsFile, _ = cmd.Flags().GetString("params")
		cm.OutFile, _ = cmd.Flags().GetString("out")
		cm.InconFile, _ = cmd.Flags().GetString("incon")
		cm.Stats, _ = cmd.Flags().GetBool("stats")
		cm.Profile, _ = cmd.Flags().GetBool("profile")
		if err := RunConvert(cm); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().StringP("mesh", "m", "", "mesh exchange file (YAML or JSON)")
	convertCmd.Flags().StringP("params", "p", "", "conversion parameters YAML file")
	convertCmd.Flags().StringP("out", "o", "MESH", "output MESH file path")
	convertCmd.Flags().String("incon", "", "output INCON file path (requires field data)")
	convertCmd.Flags().Bool("stats", false, "print grid statistics after the build")
	convertCmd.Flags().Bool("profile", false, "write a CPU profile of the conversion")
	convertCmd.MarkFlagRequired("mesh")
}

func RunConvert(cm *ConvertModel) error {
	if cm.Profile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	cp := &InputParameters.ConversionParameters{}
	if cm.ParamsFile != "" {
		data, err := ioutil.ReadFile(cm.ParamsFile)
		if err != nil {
			return err
		}
		if err = cp.Parse(data); err != nil {
			return err
		}
		cp.Print()
	}

	m, err := mesh.DecodeFile(cm.MeshFile)
	if err != nil {
		return err
	}
	if cp.DefaultMaterial != "" {
		m.DefaultMaterial = cp.DefaultMaterial
	}
	for name, value := range cp.FieldDefaults {
		m.SetFieldDefault(name, value)
	}

	opts := grid.Options{Workers: cp.Workers}
	if len(cp.GravityAxis) == 3 {
		opts.GravityAxis = r3.Vec{X: cp.GravityAxis[0], Y: cp.GravityAxis[1], Z: cp.GravityAxis[2]}
	}
	if cp.DegenerateVolume == "warn" {
		opts.DegenerateVolume = grid.VolumeWarn
	}

	g, err := grid.Build(m, opts)
	if err != nil {
		return err
	}
	if cm.Stats {
		m.PrintStatistics()
		g.PrintStatistics()
	}

	a := labels.NewAssigner()
	if cp.LabelWidth > 0 {
		a.Width = cp.LabelWidth
	}

	if err = tough.WriteMeshFile(cm.OutFile, m, g, a); err != nil {
		return err
	}
	fmt.Printf("Wrote %d elements, %d connections to %s\n",
		m.NumCells(), g.NumConnections(), cm.OutFile)

	if cm.InconFile != "" && len(m.FieldNames()) > 0 {
		if err = tough.WriteInconFile(cm.InconFile, m, a); err != nil {
			return err
		}
		fmt.Printf("Wrote initial conditions for fields %v to %s\n",
			m.FieldNames(), cm.InconFile)
	}
	return nil
}
