// Skeleton root resolution and joint tree construction.
package importer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/gltf2skel/pkg/anim"
	"github.com/Faultbox/gltf2skel/pkg/gltf"
)

// Skeleton builds the joint forest for the document's default scene.
// With no skins present the whole scene graph is imported; otherwise each
// skin contributes its root joint, deduplicated into one forest.
func (im *Importer) Skeleton() (*anim.Skeleton, error) {
	if len(im.doc.Scenes) == 0 {
		return nil, ErrNoScene
	}
	scene, err := im.doc.DefaultScene()
	if err != nil {
		return nil, err
	}
	if len(scene.Nodes) == 0 {
		return nil, ErrEmptyScene
	}

	roots, err := im.resolveRoots(scene)
	if err != nil {
		return nil, err
	}

	sk := &anim.Skeleton{Roots: make([]anim.Joint, len(roots))}
	for i, root := range roots {
		joint, err := im.buildJoint(root, make(map[int]bool))
		if err != nil {
			return nil, err
		}
		sk.Roots[i] = joint
	}

	if err := sk.Validate(); err != nil {
		return nil, fmt.Errorf("skeleton validation: %w", err)
	}
	im.log.Debug("built skeleton",
		zap.Int("joints", sk.NumJoints()), zap.Int("roots", len(sk.Roots)))
	return sk, nil
}

// resolveRoots determines the skeleton root node indices for a scene.
func (im *Importer) resolveRoots(scene *gltf.Scene) ([]int, error) {
	skins, err := im.sceneSkins(scene)
	if err != nil {
		return nil, err
	}

	if len(skins) == 0 {
		im.log.Debug("no skin in scene, importing the whole scene graph as a skeleton")
		return scene.Nodes, nil
	}
	if len(skins) > 1 {
		im.log.Debug("multiple skins in scene, merging into a single skeleton",
			zap.Int("skins", len(skins)))
	}

	var roots []int
	seen := make(map[int]bool)
	for _, skin := range skins {
		root, ok, err := im.skinRoot(skin)
		if err != nil {
			return nil, err
		}
		if !ok || seen[root] {
			continue
		}
		seen[root] = true
		roots = append(roots, root)
	}
	if len(roots) == 0 {
		return nil, fmt.Errorf("%w: no skin contributed a root joint", ErrStructural)
	}
	return roots, nil
}

// sceneSkins returns the document skins that belong to the scene, judged
// by reachability of the skin's first joint from the scene's roots.
func (im *Importer) sceneSkins(scene *gltf.Scene) ([]*gltf.Skin, error) {
	found := make(map[int]bool)
	open := append([]int(nil), scene.Nodes...)
	for len(open) > 0 {
		idx := open[len(open)-1]
		open = open[:len(open)-1]
		if found[idx] {
			continue
		}
		node, err := im.doc.GetNode(idx)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStructural, err)
		}
		found[idx] = true
		open = append(open, node.Children...)
	}

	var skins []*gltf.Skin
	for i := range im.doc.Skins {
		skin := &im.doc.Skins[i]
		if len(skin.Joints) > 0 && found[skin.Joints[0]] {
			skins = append(skins, skin)
		}
	}
	return skins, nil
}

// skinRoot finds the root joint of a skin. An explicitly declared
// skeleton node is accepted as given. Otherwise an inverted parent map is
// built from every joint's children, restricted to the skin's own joint
// set, and parent links are walked from an arbitrary joint until none
// remain. Skins without joints are skipped.
func (im *Importer) skinRoot(skin *gltf.Skin) (int, bool, error) {
	if len(skin.Joints) == 0 {
		return 0, false, nil
	}
	if skin.Skeleton != nil {
		return *skin.Skeleton, true, nil
	}

	joints := make(map[int]bool, len(skin.Joints))
	for _, j := range skin.Joints {
		joints[j] = true
	}

	parents := make(map[int]int)
	for _, j := range skin.Joints {
		node, err := im.doc.GetNode(j)
		if err != nil {
			return 0, false, fmt.Errorf("%w: %v", ErrStructural, err)
		}
		for _, child := range node.Children {
			if joints[child] {
				parents[child] = j
			}
		}
	}

	root := skin.Joints[0]
	for range skin.Joints {
		parent, ok := parents[root]
		if !ok {
			return root, true, nil
		}
		root = parent
	}
	// Walking more links than there are joints means the parent chain
	// loops back on itself.
	return 0, false, fmt.Errorf("%w: cycle in skin joint hierarchy", ErrStructural)
}

// buildJoint recursively builds a joint and its children from a node,
// preserving child order. onPath tracks the node indices of the current
// traversal path so a cyclic graph fails instead of recursing forever.
func (im *Importer) buildJoint(idx int, onPath map[int]bool) (anim.Joint, error) {
	if onPath[idx] {
		return anim.Joint{}, fmt.Errorf("%w: cycle through node %d", ErrStructural, idx)
	}
	onPath[idx] = true
	defer delete(onPath, idx)

	node, err := im.doc.GetNode(idx)
	if err != nil {
		return anim.Joint{}, fmt.Errorf("%w: %v", ErrStructural, err)
	}

	transform, err := im.bindTransform(node, idx)
	if err != nil {
		return anim.Joint{}, err
	}

	joint := anim.Joint{Name: node.Name, Transform: transform}
	if len(node.Children) > 0 {
		joint.Children = make([]anim.Joint, len(node.Children))
		for i, child := range node.Children {
			joint.Children[i], err = im.buildJoint(child, onPath)
			if err != nil {
				return anim.Joint{}, err
			}
		}
	}
	return joint, nil
}

// bindTransform extracts a node's local bind transform. Animation-target
// nodes must carry TRS components; a matrix there is disallowed by the
// glTF spec. Matrix transforms on static nodes are decomposed.
func (im *Importer) bindTransform(node *gltf.Node, idx int) (anim.Transform, error) {
	if node.HasMatrix() {
		if im.isAnimationTarget(idx) {
			return anim.Transform{}, fmt.Errorf(
				"%w: node %q is an animation target but carries a matrix transform",
				ErrSchemaViolation, node.Name)
		}
		return decomposeMatrix(node.Matrix), nil
	}
	return restTransform(node), nil
}

// restTransform reads a node's TRS components, defaulting omitted parts
// to identity.
func restTransform(node *gltf.Node) anim.Transform {
	t := anim.IdentityTransform()
	if len(node.Translation) == 3 {
		t.Translation = mgl32.Vec3{node.Translation[0], node.Translation[1], node.Translation[2]}
	}
	if len(node.Rotation) == 4 {
		t.Rotation = mgl32.Quat{
			W: node.Rotation[3],
			V: mgl32.Vec3{node.Rotation[0], node.Rotation[1], node.Rotation[2]},
		}
	}
	if len(node.Scale) == 3 {
		t.Scale = mgl32.Vec3{node.Scale[0], node.Scale[1], node.Scale[2]}
	}
	return t
}

// decomposeMatrix splits a column-major TRS matrix into its components.
func decomposeMatrix(m []float32) anim.Transform {
	var mat mgl32.Mat4
	copy(mat[:], m)

	t := anim.Transform{
		Translation: mgl32.Vec3{mat[12], mat[13], mat[14]},
		Scale: mgl32.Vec3{
			mat.Col(0).Vec3().Len(),
			mat.Col(1).Vec3().Len(),
			mat.Col(2).Vec3().Len(),
		},
	}

	rot := mgl32.Ident4()
	for c := 0; c < 3; c++ {
		s := t.Scale[c]
		if s == 0 {
			continue
		}
		for r := 0; r < 3; r++ {
			rot[c*4+r] = mat[c*4+r] / s
		}
	}
	t.Rotation = mgl32.Mat4ToQuat(rot).Normalize()
	return t
}
