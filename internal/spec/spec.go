// Package spec holds the YAML shape of a pipeline document.
package spec

// Node is one transform of a pipeline. Args bind positionally to the class
// signature, Params by name. Composite nodes list their children under
// transforms.
type Node struct {
	Name       string         `yaml:"name"`
	Args       []any          `yaml:"args"`
	Params     map[string]any `yaml:"params"`
	Transforms []Node         `yaml:"transforms"`
}

// IsComposite reports whether the node declares children.
func (n Node) IsComposite() bool { return len(n.Transforms) > 0 }

// Input describes the synthetic samples fed through the pipeline.
type Input struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	Channels  int `yaml:"channels"`
	Masks     int `yaml:"masks"`
	BBoxes    int `yaml:"bboxes"`
	Keypoints int `yaml:"keypoints"`
}

type File struct {
	SchemaVersion string `yaml:"schema_version"`
	Name          string `yaml:"name"`
	Input         Input  `yaml:"input"`
	Pipeline      Node   `yaml:"pipeline"`
}
