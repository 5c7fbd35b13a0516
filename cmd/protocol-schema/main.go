// Command protocol-schema renders the realtime wire protocol as JSON Schema
// documents, one per message type, for client validation and editor tooling.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"

	"star-rush/server/internal/protocol"
)

func main() {
	var outDir string
	flag.StringVar(&outDir, "out", "", "directory to write the JSON schemas")
	flag.Parse()

	if outDir == "" {
		fmt.Fprintln(os.Stderr, "--out is required")
		os.Exit(1)
	}

	for name, schema := range buildSchemas() {
		if err := writeSchema(filepath.Join(outDir, name+".schema.json"), schema); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write %s schema: %v\n", name, err)
			os.Exit(1)
		}
	}
}

func buildSchemas() map[string]*jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
	}

	schemas := map[string]*jsonschema.Schema{
		"clientMessage":      reflector.Reflect(new(protocol.ClientMessage)),
		"currentPlayers":     reflector.Reflect(new(protocol.CurrentPlayersMessage)),
		"newPlayer":          reflector.Reflect(new(protocol.NewPlayerMessage)),
		"playerDisconnected": reflector.Reflect(new(protocol.PlayerDisconnectedMessage)),
		"playerUpdates":      reflector.Reflect(new(protocol.PlayerUpdatesMessage)),
		"starsLocation":      reflector.Reflect(new(protocol.StarsLocationMessage)),
		"updateScore":        reflector.Reflect(new(protocol.UpdateScoreMessage)),
		"gameSummary":        reflector.Reflect(new(protocol.GameSummaryMessage)),
		"pong":               reflector.Reflect(new(protocol.PongMessage)),
	}

	for name, schema := range schemas {
		schema.Title = fmt.Sprintf("Star Rush %s message", name)
	}
	return schemas
}

func writeSchema(outPath string, schema *jsonschema.Schema) error {
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create schema directory: %w", err)
	}

	tmpPath := outPath + ".tmp"
	if err := os.WriteFile(tmpPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write temp schema: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("replace schema: %w", err)
	}

	return nil
}
