package engine

import "fmt"

// ActionKind enumerates everything a tap can trigger.
type ActionKind int

const (
	// ActionCancel returns to the menu from any scene.
	ActionCancel ActionKind = iota
	// ActionCreateLobby requests a new lobby, private or public per the
	// menu toggle.
	ActionCreateLobby
	// ActionJoinLobby goes to pin entry (private) or starts the public
	// join protocol.
	ActionJoinLobby
	// ActionToggleLobby flips the public/private setting.
	ActionToggleLobby
	// ActionKeyDigit appends one digit to the pin being entered.
	ActionKeyDigit
	// ActionSubmitCode submits the entered pin.
	ActionSubmitCode
	// ActionReady marks this player ready.
	ActionReady
)

// Action is one entry of the dispatch table.
type Action struct {
	Kind  ActionKind
	Digit int
}

// actionBindings maps button names to actions per scene. A "cancel" button
// resolves in every scene without being listed.
var actionBindings = map[SceneID]map[string]Action{
	SceneMenu: {
		"createLobby": {Kind: ActionCreateLobby},
		"joinLobby":   {Kind: ActionJoinLobby},
		"toggleLobby": {Kind: ActionToggleLobby},
	},
	SceneJoinPrivate: {
		"0":      {Kind: ActionKeyDigit, Digit: 0},
		"1":      {Kind: ActionKeyDigit, Digit: 1},
		"2":      {Kind: ActionKeyDigit, Digit: 2},
		"submit": {Kind: ActionSubmitCode},
	},
	SceneReady: {
		"ready": {Kind: ActionReady},
	},
}

// buildDispatchTable resolves every declared button to an action up front.
// An unmapped button is a configuration error, not a runtime warning.
func buildDispatchTable(scenes map[SceneID]*scene) (map[SceneID]map[string]Action, error) {
	table := make(map[SceneID]map[string]Action, len(scenes))
	for id, sc := range scenes {
		table[id] = make(map[string]Action, len(sc.buttons))
		for _, b := range sc.buttons {
			if b.name == buttonNameCancel {
				table[id][b.name] = Action{Kind: ActionCancel}
				continue
			}
			action, ok := actionBindings[id][b.name]
			if !ok {
				return nil, fmt.Errorf("scene %s: button %q has no action", id, b.name)
			}
			table[id][b.name] = action
		}
	}
	return table, nil
}
