package anim

import "fmt"

// Joint is a named node of the output skeleton hierarchy. Children keep
// the source document's order.
type Joint struct {
	Name      string    `json:"name"`
	Transform Transform `json:"transform"`
	Children  []Joint   `json:"children,omitempty"`
}

// Skeleton is a forest of root joints. Joints are owned values, so the
// structure is acyclic and single-parent by construction; Validate
// checks the remaining invariant of unique, non-empty names.
type Skeleton struct {
	Roots []Joint `json:"roots"`
}

// NumJoints returns the total joint count across the forest.
func (s *Skeleton) NumJoints() int {
	n := 0
	s.walk(func(*Joint) { n++ })
	return n
}

// JointNames returns every joint name in canonical depth-first order.
// This order defines the track layout of animations imported against
// this skeleton.
func (s *Skeleton) JointNames() []string {
	names := make([]string, 0, s.NumJoints())
	s.walk(func(j *Joint) { names = append(names, j.Name) })
	return names
}

// walk visits every joint depth-first, roots in order, children before
// siblings.
func (s *Skeleton) walk(fn func(*Joint)) {
	var rec func(*Joint)
	rec = func(j *Joint) {
		fn(j)
		for i := range j.Children {
			rec(&j.Children[i])
		}
	}
	for i := range s.Roots {
		rec(&s.Roots[i])
	}
}

// Validate checks the structural invariants of the forest: every joint
// carries a unique, non-empty name.
func (s *Skeleton) Validate() error {
	seen := make(map[string]bool, s.NumJoints())
	var err error
	s.walk(func(j *Joint) {
		if err != nil {
			return
		}
		if j.Name == "" {
			err = ErrEmptyJointName
			return
		}
		if seen[j.Name] {
			err = fmt.Errorf("%w: %q", ErrDuplicateJointName, j.Name)
			return
		}
		seen[j.Name] = true
	})
	return err
}
