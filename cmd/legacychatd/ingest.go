package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/tymeless/legacychat/memory"
)

type memoryFile struct {
	PersonaID string `yaml:"personaId"`
	Memories  []struct {
		Content  string          `yaml:"content"`
		Metadata memory.Metadata `yaml:"metadata"`
	} `yaml:"memories"`
}

func newIngestCmd() *cobra.Command {
	params := &struct {
		PersonaID string
	}{}

	cmd := &cobra.Command{
		Use:   "ingest <memories-file OR memories-dir> [...<memories-file OR memories-dir>]",
		Short: "Embed and store memory snippets for a persona",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			app, logger, err := newApp(ctx, "")
			if err != nil {
				return err
			}
			defer app.Close()

			var files []string
			for _, arg := range args {
				stat, err := os.Stat(arg)
				if os.IsNotExist(err) {
					return errors.Wrapf(err, "memories-file or memories-dir does not exist")
				} else if stat.IsDir() {
					entries, err := os.ReadDir(arg)
					if err != nil {
						return errors.Wrapf(err, "failed to read memories-dir")
					}
					for _, entry := range entries {
						if entry.IsDir() ||
							(!strings.HasSuffix(entry.Name(), ".yaml") && !strings.HasSuffix(entry.Name(), ".yml")) {
							continue
						}
						files = append(files, fmt.Sprintf("%s/%s", arg, entry.Name()))
					}
				} else {
					files = append(files, arg)
				}
			}
			if len(files) == 0 {
				return errors.New("no memory files found")
			}

			for _, file := range files {
				raw, err := os.ReadFile(file)
				if err != nil {
					return errors.Wrapf(err, "failed to read memories file: %s", file)
				}
				var mf memoryFile
				if err := yaml.Unmarshal(raw, &mf); err != nil {
					return errors.Wrapf(err, "failed to unmarshal memories file: %s", file)
				}

				personaID := mf.PersonaID
				if params.PersonaID != "" {
					personaID = params.PersonaID
				}
				if personaID == "" {
					return errors.Errorf("no persona id in %s and --persona not given", file)
				}

				for _, m := range mf.Memories {
					stored, err := app.IngestMemory(ctx, personaID, m.Content, m.Metadata)
					if err != nil {
						return errors.Wrapf(err, "failed to ingest memory from %s", file)
					}
					logger.Info("memory ingested",
						"personaId", personaID,
						"memoryId", stored.ID,
					)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&params.PersonaID, "persona", "", "Persona id overriding the one in the files")
	return cmd
}
