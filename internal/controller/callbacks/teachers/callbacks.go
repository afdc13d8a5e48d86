package teachers

// Callback data раздела преподавателей.
// tl - список, tf - фильтры, tv - карточка, te - форма, td - удаление.
const (
	Open   = "tl:open"
	Page   = "tl:page:" // tl:page:2
	Search = "tl:search"
	Back   = "tl:back" // к списку с сохранёнными фильтрами

	FilterActive   = "tf:active" // все -> активные -> неактивные
	FilterBranches = "tf:branches:"
	FilterBranch   = "tf:branch:" // tf:branch:0 - все филиалы
	FilterClear    = "tf:clear"

	View = "tv:" // tv:15

	New          = "te:new"
	Edit         = "te:edit:"  // te:edit:15
	Field        = "te:field:" // te:field:first_name_en
	Type         = "te:type:"  // te:type:Kid
	ToggleActive = "te:active"
	Branches     = "te:branches:"
	Branch       = "te:branch:" // te:branch:0 - без филиала
	Show         = "te:show"
	Save         = "te:save"
	Cancel       = "te:cancel"
	StopInput    = "te:noinput"

	Delete       = "td:ask:" // td:ask:15
	DeleteCancel = "td:cancel"
)

// Поля формы, вводимые текстом (json имена model.TeacherInput)
const (
	fieldFirstNameEn     = "first_name_en"
	fieldLastNameEn      = "last_name_en"
	fieldNicknameEn      = "nickname_en"
	fieldFirstNameTh     = "first_name_th"
	fieldLastNameTh      = "last_name_th"
	fieldNicknameTh      = "nickname_th"
	fieldNationality     = "nationality"
	fieldHourlyRate      = "hourly_rate"
	fieldSpecializations = "specializations"
	fieldCertifications  = "certifications"
	fieldEmail           = "email"
	fieldPhone           = "phone"
	fieldLineID          = "line_id"
)
