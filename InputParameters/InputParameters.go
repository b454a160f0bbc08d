package InputParameters

import (
	"fmt"
	"sort"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML conversion input file
type ConversionParameters struct {
	Title            string             `yaml:"Title"`
	GravityAxis      []float64          `yaml:"GravityAxis"`      // Unit direction gravity acts along, default [0,0,1]
	LabelWidth       int                `yaml:"LabelWidth"`       // Element label width, default 5
	DefaultMaterial  string             `yaml:"DefaultMaterial"`  // Material for cells without an explicit tag
	DegenerateVolume string             `yaml:"DegenerateVolume"` // "error" (default) or "warn"
	Workers          int                `yaml:"Workers"`          // Goroutines for the geometry pass, 0 = GOMAXPROCS
	FieldDefaults    map[string]float64 `yaml:"FieldDefaults"`    // Default value per named field (pressure, temperature, ...)
}

func (cp *ConversionParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, cp)
}

func (cp *ConversionParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", cp.Title)
	fmt.Printf("%v\t= GravityAxis\n", cp.GravityAxis)
	fmt.Printf("[%d]\t\t\t= LabelWidth\n", cp.LabelWidth)
	fmt.Printf("[%s]\t\t= DefaultMaterial\n", cp.DefaultMaterial)
	fmt.Printf("[%s]\t\t= DegenerateVolume\n", cp.DegenerateVolume)
	keys := make([]string, len(cp.FieldDefaults))
	i := 0
	for k := range cp.FieldDefaults {
		keys[i] = k
		i++
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("FieldDefaults[%s] = %v\n", key, cp.FieldDefaults[key])
	}
}
