package config

import (
	"path/filepath"
	"testing"
)

func TestLoadPipelineSpec_TreeAndInputDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "pipeline.yml", `schema_version: v1
name: detection
input:
  bboxes: 4
pipeline:
  name: Compose
  transforms:
    - name: HorizontalFlip
      args: [0.7]
    - name: OneOf
      params: {p: 1.0}
      transforms:
        - name: VerticalFlip
        - name: augkit.color.InvertImg
          params: {max_value: 1}
`)
	doc, err := LoadPipelineSpec(path)
	if err != nil {
		t.Fatalf("LoadPipelineSpec: %v", err)
	}
	if doc.SchemaVersion != SupportedSchema {
		t.Fatalf("want schema %s, got %s", SupportedSchema, doc.SchemaVersion)
	}
	if doc.Input.Width != 64 || doc.Input.Height != 64 || doc.Input.Channels != 3 || doc.Input.BBoxes != 4 {
		t.Fatalf("unexpected input %+v", doc.Input)
	}
	root := doc.Pipeline
	if root.Name != "Compose" || !root.IsComposite() || len(root.Transforms) != 2 {
		t.Fatalf("unexpected root %+v", root)
	}
	if got := root.Transforms[0].Args; len(got) != 1 || got[0] != 0.7 {
		t.Fatalf("unexpected args %v", got)
	}
	oneOf := root.Transforms[1]
	if oneOf.Params["p"] != 1.0 || len(oneOf.Transforms) != 2 {
		t.Fatalf("unexpected OneOf node %+v", oneOf)
	}
	if oneOf.Transforms[1].Params["max_value"] != 1 {
		t.Fatalf("unexpected params %v", oneOf.Transforms[1].Params)
	}
}

func TestLoadPipelineSpec_InvalidSchema(t *testing.T) {
	path := writeFile(t, t.TempDir(), "pipeline.yml", "schema_version: v999\npipeline: {name: Compose}\n")
	if _, err := LoadPipelineSpec(path); err == nil {
		t.Fatal("expected error for invalid schema_version")
	}
}

func TestLoadPipelineSpec_MissingRoot(t *testing.T) {
	path := writeFile(t, t.TempDir(), "pipeline.yml", "schema_version: v1\n")
	if _, err := LoadPipelineSpec(path); err == nil {
		t.Fatal("expected error for missing root transform")
	}
}

func TestLoadPipelineSpec_MissingFile(t *testing.T) {
	if _, err := LoadPipelineSpec(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
