package engine

import "strconv"

// SceneID names one of the six scenes. The id doubles as the root element
// path of the scene in the stage.
type SceneID string

const (
	SceneMenu        SceneID = "menu"
	SceneInviteCode  SceneID = "inviteCode"
	SceneJoin        SceneID = "join"
	SceneJoinPrivate SceneID = "joinPrivate"
	SceneReady       SceneID = "ready"
	SceneGame        SceneID = "game"
)

// Material names provided by the host asset library.
const (
	MaterialDefault      = "default"
	MaterialLobbyPrivate = "lobbyPrivate"
	MaterialLobbyPublic  = "lobbyPublic"
	MaterialSubmit       = "submit"
	MaterialWin          = "win"
	MaterialLose         = "lose"
)

func iconMaterial(digit int) string {
	return "icon" + strconv.Itoa(digit)
}

// Display element paths.
const (
	pathJoinStatus  = "join/statusText"
	pathReadyTitle  = "ready/titleText"
	pathReadyText   = "ready/readyText"
	pathReadyButton = "ready/ready"
	pathGameTitle   = "game/titleText"
	pathGameBg      = "game/bg"
)

// UI copy.
const (
	textSearching    = "Searching for games..."
	textNoMatch      = "No match found"
	textPlay         = "Play"
	textRematch      = "Rematch"
	textWaiting      = "Waiting for other player..."
	textMakeAFace    = "Make a face..."
	textYouWin       = "You win!"
	textYouLose      = "You lose"
	textDraw         = "Draw"
	buttonNameCancel = "cancel"
)

// button is a tappable element of a scene. Label text and material providers
// are re-evaluated on every activation and toggle.
type button struct {
	name     string
	label    string
	text     func(e *Engine) string
	material func(e *Engine) string
}

type scene struct {
	id      SceneID
	buttons []button
	// reset runs before activation, restoring neutral visuals and clearing
	// in-progress local state.
	reset func(e *Engine)
	// enter runs the scene's side effects after stale timers are cancelled.
	enter func(e *Engine)
}

func sceneTable() map[SceneID]*scene {
	return map[SceneID]*scene{
		SceneMenu: {
			id: SceneMenu,
			buttons: []button{
				{
					name:  "createLobby",
					label: "menu/textLobby",
					text: func(e *Engine) string {
						if e.menuPrivate {
							return "Host Private"
						}
						return "Host Public"
					},
				},
				{
					name:  "joinLobby",
					label: "menu/textJoin",
					text: func(e *Engine) string {
						if e.menuPrivate {
							return "Enter Code"
						}
						return "Find Game"
					},
				},
				{
					name:  "toggleLobby",
					label: "menu/textLobby",
					text: func(e *Engine) string {
						if e.menuPrivate {
							return "Private game"
						}
						return "Public game"
					},
					material: func(e *Engine) string {
						if e.menuPrivate {
							return MaterialLobbyPrivate
						}
						return MaterialLobbyPublic
					},
				},
			},
			enter: func(e *Engine) { e.enterMenu() },
		},
		SceneInviteCode: {
			id:      SceneInviteCode,
			buttons: []button{{name: buttonNameCancel}},
			enter:   func(e *Engine) { e.enterInviteCode() },
		},
		SceneJoin: {
			id:      SceneJoin,
			buttons: []button{{name: buttonNameCancel}},
		},
		SceneJoinPrivate: {
			id: SceneJoinPrivate,
			buttons: []button{
				{name: buttonNameCancel},
				{name: "0"},
				{name: "1"},
				{name: "2"},
				{name: "submit"},
			},
			reset: func(e *Engine) { e.resetPinEntry() },
			enter: func(e *Engine) { e.showSubmit(false) },
		},
		SceneReady: {
			id: SceneReady,
			buttons: []button{
				{name: "ready"},
				{name: buttonNameCancel},
			},
			enter: func(e *Engine) { e.enterReady() },
		},
		SceneGame: {
			id:      SceneGame,
			buttons: []button{{name: buttonNameCancel}},
			enter:   func(e *Engine) { e.enterGame() },
		},
	}
}

// pinSlotPath addresses the i-th pin placeholder of a scene.
func pinSlotPath(id SceneID, i int) string {
	return string(id) + "/placeholders/" + strconv.Itoa(i)
}
