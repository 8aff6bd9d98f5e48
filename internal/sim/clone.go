package sim

import (
	"encoding/json"
	"fmt"
)

// Clone deep-copies the state through its JSON form, so a copy can never
// drift from the serialized representation the determinism contract is
// checked against. A marshal failure here is a defect, not a runtime
// condition.
func (st *RunState) Clone() *RunState {
	raw, err := json.Marshal(st)
	if err != nil {
		panic(fmt.Sprintf("sim: state not serializable: %v", err))
	}
	out := &RunState{}
	if err := json.Unmarshal(raw, out); err != nil {
		panic(fmt.Sprintf("sim: state not round-trippable: %v", err))
	}
	return out
}
