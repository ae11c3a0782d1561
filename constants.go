package main

type ShapeType string

const (
	ShapeRectangle ShapeType = "rectangle"
	ShapeEllipse   ShapeType = "ellipse"
	ShapeLine      ShapeType = "line"
	ShapeImage     ShapeType = "image"
	ShapeText      ShapeType = "text"
	ShapeGroup     ShapeType = "group"
)

type StateKind string

const (
	StateSelect   StateKind = "SelectState"
	StateResize   StateKind = "ResizeState"
	StateMove     StateKind = "MoveState"
	StateDraw     StateKind = "DrawState"
	StateEditText StateKind = "EditTextState"
)

// HandlePos names the corner that follows the pointer during a resize.
type HandlePos string

const (
	HandleTopLeft     HandlePos = "top-left"
	HandleTopRight    HandlePos = "top-right"
	HandleBottomRight HandlePos = "bottom-right"
	HandleBottomLeft  HandlePos = "bottom-left"
)

type ZOrderAction string

const (
	ZOrderFront    ZOrderAction = "bringToFront"
	ZOrderBack     ZOrderAction = "sendToBack"
	ZOrderForward  ZOrderAction = "bringForward"
	ZOrderBackward ZOrderAction = "sendBackward"
)

type CommandKey string

const (
	CmdAddTemplateShape CommandKey = "ADD_TEMPLATE_SHAPE"
	CmdAddShape         CommandKey = "ADD_SHAPE"
	CmdSetProperty      CommandKey = "SET_PROPERTY"
	CmdZOrderMove       CommandKey = "Z_ORDER_MOVE"
	CmdCanvasReset      CommandKey = "CANVAS_RESET"
	CmdSetState         CommandKey = "SET_STATE"
	CmdStartDraw        CommandKey = "START_DRAW"
	CmdContinueDraw     CommandKey = "CONTINUE_DRAW"
	CmdEndDraw          CommandKey = "END_DRAW"
	CmdStartMove        CommandKey = "START_MOVE"
	CmdContinueMove     CommandKey = "CONTINUE_MOVE"
	CmdStartResize      CommandKey = "START_RESIZE"
	CmdContinueResize   CommandKey = "CONTINUE_RESIZE"
	CmdUpdateSelected   CommandKey = "UPDATE_SELECTED"
	CmdGroup            CommandKey = "GROUP"
	CmdUngroup          CommandKey = "UNGROUP"
)

type PropertyKind string

const (
	KindColor    PropertyKind = "color"
	KindText     PropertyKind = "text"
	KindNumber   PropertyKind = "number"
	KindDropdown PropertyKind = "dropdown"
	KindRead     PropertyKind = "read"
	KindBoolean  PropertyKind = "boolean"
)

const (
	PropX            = "x"
	PropY            = "y"
	PropWidth        = "width"
	PropHeight       = "height"
	PropColor        = "color"
	PropLineLength   = "lineLength"
	PropLineWidth    = "lineWidth"
	PropContent      = "content"
	PropFontFamily   = "fontFamily"
	PropFontSize     = "fontSize"
	PropFontColor    = "fontColor"
	PropBold         = "bold"
	PropItalic       = "italic"
	PropShadowAngle  = "shadowAngle"
	PropShadowRadius = "shadowRadius"
	PropShadowBlur   = "shadowBlur"
	PropShadowColor  = "shadowColor"
	PropBorderWidth  = "borderWidth"
	PropBorderColor  = "borderColor"
	PropImageURL     = "imageUrl"
)

var fontFamilies = []string{
	"Arial",
	"Times New Roman",
	"Tahoma",
	"Georgia",
	"Courier New",
	"Brush Script MT",
}

const (
	defaultCanvasWidth    = 800
	defaultCanvasHeight   = 600
	defaultTemplateWidth  = 300
	defaultTemplateHeight = 100
	defaultColor          = "#000000"
	defaultFontSize       = 30
	defaultTextContent    = "Enter text here."
	defaultFontFamily     = "Arial"
	defaultShapeType      = ShapeRectangle
)
