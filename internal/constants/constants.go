package constants

// Order status constants (sales axis, owned by the sales flow)
const (
	OrderStatusOffen         = "offen"
	OrderStatusInBearbeitung = "in_bearbeitung"
	OrderStatusAbgeschlossen = "abgeschlossen"
	OrderStatusStorniert     = "storniert"
)

// Picking (Kommissionierung) status constants
const (
	PickingStatusOffen     = "offen"
	PickingStatusGestartet = "gestartet"
	PickingStatusFertig    = "fertig"
)

// Control (Kontrolle) status constants
const (
	ControlStatusOffen       = "offen"
	ControlStatusInKontrolle = "in_kontrolle"
	ControlStatusGeprueft    = "geprueft"
)

// Order position unit constants
const (
	UnitKg     = "kg"
	UnitStueck = "stueck"
	UnitKiste  = "kiste"
	UnitKarton = "karton"
)

// Staff role constants
const (
	RoleAdmin            = "admin"
	RoleKommissionierung = "kommissionierung"
	RoleKontrolle        = "kontrolle"
	RoleZerleger         = "zerleger"
	RoleKunde            = "kunde"
)

// Bulk surcharge edit modes
const (
	SurchargeModeSet = "set"
	SurchargeModeAdd = "add"
	SurchargeModeSub = "sub"
)

// Override audit actions
const (
	OverrideActionCompletePicking = "override_complete_picking"
	OverrideActionSetStatus       = "override_set_status"
	OverrideActionDeletePosition  = "override_delete_position"
)

// Order event axes
const (
	EventAxisPicking = "kommissionierung"
	EventAxisControl = "kontrolle"
)

// Queue names
const (
	QueueDefault = "default"
)

// Async task type names
const (
	TaskOrderStatusEvent = "order:status_event"
)
