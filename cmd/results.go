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
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"

	"github.com/gotough/gotough/tough"
)

// resultsCmd represents the results command
var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Parse simulator output into CSV or a SQLite results index",
	Long: `
Parses the simulator's tabular time-series output. By default the records
are dumped as CSV to stdout; with --db they are indexed into a SQLite file
for downstream plotting.

gotough results --output OUTPUT --db results.sqlite`,
	Run: func(cmd *cobra.Command, args []string) {
		outputFile, _ := cmd.Flags().GetString("output")
		dbFile, _ := cmd.Flags().GetString("db")
		if err := RunResults(outputFile, dbFile); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(resultsCmd)
	resultsCmd.Flags().StringP("output", "o", "", "simulator output file to parse")
	resultsCmd.Flags().String("db", "", "SQLite file to index the results into")
	resultsCmd.MarkFlagRequired("output")
}

func RunResults(outputFile, dbFile string) error {
	f, err := os.Open(outputFile)
	if err != nil {
		return err
	}
	defer f.Close()

	steps, err := tough.ReadOutput(f)
	if err != nil {
		return err
	}
	fmt.Printf("Parsed %d time steps from %s\n", len(steps), outputFile)

	if dbFile != "" {
		return storeResults(dbFile, steps)
	}
	printCSV(steps)
	return nil
}

func printCSV(steps []tough.TimeStep) {
	for _, s := range steps {
		fmt.Printf("TIME,%g\n", s.Time)
		fmt.Print("ELEM")
		for _, col := range s.Columns {
			fmt.Printf(",%s", col)
		}
		fmt.Println()
		for i, label := range s.Labels {
			fmt.Print(label)
			for _, col := range s.Columns {
				fmt.Printf(",%g", s.Data[col][i])
			}
			fmt.Println()
		}
	}
}

func storeResults(dbFile string, steps []tough.TimeStep) error {
	db, err := sql.Open("sqlite", dbFile)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS timesteps (
			id   INTEGER PRIMARY KEY,
			time REAL NOT NULL
		);
		CREATE TABLE IF NOT EXISTS results (
			timestep INTEGER NOT NULL REFERENCES timesteps(id),
			element  TEXT NOT NULL,
			variable TEXT NOT NULL,
			value    REAL NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_results_lookup
			ON results (timestep, element, variable);
	`)
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	insStep, err := tx.Prepare("INSERT INTO timesteps (id, time) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer insStep.Close()
	insVal, err := tx.Prepare("INSERT INTO results (timestep, element, variable, value) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer insVal.Close()

	for i, s := range steps {
		if _, err = insStep.Exec(i, s.Time); err != nil {
			return err
		}
		for j, label := range s.Labels {
			for _, col := range s.Columns {
				if _, err = insVal.Exec(i, label, col, s.Data[col][j]); err != nil {
					return err
				}
			}
		}
	}
	if err = tx.Commit(); err != nil {
		return err
	}
	fmt.Printf("Indexed %d time steps into %s\n", len(steps), dbFile)
	return nil
}
