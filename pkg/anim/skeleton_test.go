package anim

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// threeJointForest builds root(a) -> b -> c plus a second root d.
func threeJointForest() *Skeleton {
	return &Skeleton{Roots: []Joint{
		{
			Name: "a",
			Children: []Joint{
				{Name: "b", Children: []Joint{{Name: "c"}}},
			},
		},
		{Name: "d"},
	}}
}

func TestSkeleton_NumJoints(t *testing.T) {
	if got := threeJointForest().NumJoints(); got != 4 {
		t.Errorf("NumJoints() = %d, want 4", got)
	}
	empty := &Skeleton{}
	if got := empty.NumJoints(); got != 0 {
		t.Errorf("NumJoints() = %d, want 0", got)
	}
}

func TestSkeleton_JointNames_DepthFirst(t *testing.T) {
	got := threeJointForest().JointNames()
	want := []string{"a", "b", "c", "d"}

	if len(got) != len(want) {
		t.Fatalf("JointNames() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("JointNames()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSkeleton_Validate(t *testing.T) {
	tests := []struct {
		name    string
		sk      *Skeleton
		wantErr error
	}{
		{
			name: "valid forest",
			sk:   threeJointForest(),
		},
		{
			name: "duplicate name across roots",
			sk: &Skeleton{Roots: []Joint{
				{Name: "a"}, {Name: "a"},
			}},
			wantErr: ErrDuplicateJointName,
		},
		{
			name: "duplicate name in subtree",
			sk: &Skeleton{Roots: []Joint{
				{Name: "a", Children: []Joint{{Name: "a"}}},
			}},
			wantErr: ErrDuplicateJointName,
		},
		{
			name: "empty name",
			sk: &Skeleton{Roots: []Joint{
				{Name: "a", Children: []Joint{{Name: ""}}},
			}},
			wantErr: ErrEmptyJointName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sk.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestIdentityTransform(t *testing.T) {
	id := IdentityTransform()

	if id.Translation != (mgl32.Vec3{}) {
		t.Errorf("Translation = %v, want zero", id.Translation)
	}
	if id.Scale != (mgl32.Vec3{1, 1, 1}) {
		t.Errorf("Scale = %v, want unit", id.Scale)
	}
	if id.Rotation.W != 1 || id.Rotation.V != (mgl32.Vec3{}) {
		t.Errorf("Rotation = %+v, want identity", id.Rotation)
	}
}
