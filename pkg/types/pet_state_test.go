package types

import "testing"

func TestPetStateString(t *testing.T) {
	cases := map[PetState]string{
		StateIdle:  "Idle",
		StateWalk:  "Walk",
		StateRun:   "Run",
		StateJump:  "Jump",
		StateSlide: "Slide",
		StateHurt:  "Hurt",
		StateDead:  "Dead",
	}
	for state, expected := range cases {
		if got := state.String(); got != expected {
			t.Errorf("%d.String() = %q，期望 %q", state, got, expected)
		}
	}
}

func TestPetStateClassification(t *testing.T) {
	for _, state := range AllPetStates {
		switch state {
		case StateJump, StateHurt, StateDead:
			if state.IsLooping() {
				t.Errorf("%s 不应循环播放", state)
			}
		default:
			if !state.IsLooping() {
				t.Errorf("%s 应循环播放", state)
			}
		}
	}

	if !StateJump.IsOneShot() || !StateHurt.IsOneShot() {
		t.Error("Jump/Hurt 应为单次动画状态")
	}
	if StateDead.IsOneShot() {
		t.Error("Dead 是终态而非单次动画状态")
	}
	if !StateIdle.IsLocomotion() || !StateWalk.IsLocomotion() || !StateRun.IsLocomotion() {
		t.Error("Idle/Walk/Run 应为移动状态")
	}
	if StateSlide.IsLocomotion() {
		t.Error("Slide 不属于可回退的移动状态")
	}
}

func TestSpeciesFromString(t *testing.T) {
	if SpeciesFromString("dog") != SpeciesDog {
		t.Error("\"dog\" 应解析为狗")
	}
	if SpeciesFromString("cat") != SpeciesCat {
		t.Error("\"cat\" 应解析为猫")
	}
	if SpeciesFromString("dragon") != SpeciesCat {
		t.Error("未知种类应回退为猫")
	}
}
