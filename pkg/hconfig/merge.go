package hconfig

// Merge deep-copies every node of other into root, used to combine
// several devices' trees into one aggregate for pkg/report (§5, §7). A
// child whose text already exists under its destination parent raises
// DuplicateChildError, unless that parent is on the
// parent-allows-duplicate-child list, in which case other's subtree is
// cloned alongside the existing one instead of being rejected.
func Merge(root *Node, other *Node, instance *Instance) error {
	return mergeInto(root, other, instance)
}

func mergeInto(dst *Node, src *Node, instance *Instance) error {
	for _, c := range src.Children {
		if dst.ChildByText(c.Text) != nil && !dst.allowsDuplicateChildren() {
			return &DuplicateChildError{Parent: dst.Text, Text: c.Text}
		}
		clone := c.ShallowCopyInto(dst)
		clone.Instance = instance
		if err := mergeInto(clone, c, instance); err != nil {
			return err
		}
	}
	return nil
}
