package transform

// Method names an entry of a class's method table.
type Method string

const (
	MethodCall             Method = "call"
	MethodApply            Method = "apply"
	MethodApplyToBBox      Method = "apply_to_bbox"
	MethodApplyToBBoxes    Method = "apply_to_bboxes"
	MethodApplyToKeypoint  Method = "apply_to_keypoint"
	MethodApplyToKeypoints Method = "apply_to_keypoints"
	MethodApplyToMask      Method = "apply_to_mask"
	MethodApplyToMasks     Method = "apply_to_masks"
)

// TrackedMethods returns the entry point followed by the per-target apply
// methods, in a stable order.
func TrackedMethods() []Method {
	return []Method{
		MethodCall,
		MethodApply,
		MethodApplyToBBox,
		MethodApplyToBBoxes,
		MethodApplyToKeypoint,
		MethodApplyToKeypoints,
		MethodApplyToMask,
		MethodApplyToMasks,
	}
}

// Target is a kind of data a transform can be applied to.
type Target string

const (
	TargetImage       Target = "Image"
	TargetMask        Target = "Mask"
	TargetBBoxes      Target = "BBoxes"
	TargetKeypoints   Target = "Keypoints"
	TargetGlobalLabel Target = "Global Label"
)

// Targets reports which targets a class handles, derived from the apply
// methods in its table.
func (c *Class) Targets() []Target {
	var out []Target
	if c.Has(MethodApply) {
		out = append(out, TargetImage)
	}
	if c.Has(MethodApplyToMask) || c.Has(MethodApplyToMasks) {
		out = append(out, TargetMask)
	}
	if c.Has(MethodApplyToBBoxes) || c.Has(MethodApplyToBBox) {
		out = append(out, TargetBBoxes)
	}
	if c.Has(MethodApplyToKeypoints) || c.Has(MethodApplyToKeypoint) {
		out = append(out, TargetKeypoints)
	}
	return out
}
