package schedule

// Callback data мастера расписаний.
// sw - обёртка, sc - класс, sg - новая группа, se - событие, pi - картинка preview.
const (
	Prefix        = "sw:"
	ClassPrefix   = "sc:"
	GroupPrefix   = "sg:"
	EventPrefix   = "se:"
	PreviewPrefix = "pi:"

	Open      = "sw:open"
	PickClass = "sw:class"
	PickEvent = "sw:events"
	EventType = "sw:type:" // sw:type:meeting
	Back      = "sw:back"
	Close     = "sw:close"
	StopInput = "sw:noinput"

	ClassTab      = "sc:tab:" // sc:tab:room
	ClassNext     = "sc:next"
	ClassPrev     = "sc:prev"
	ClassField    = "sc:field:" // sc:field:schedule_name
	ClassBranches = "sc:branches:"
	ClassBranch   = "sc:branch:"
	ClassGroups   = "sc:groups:"
	ClassGroup    = "sc:group:"
	ClassTeachers = "sc:teachers:"
	ClassTeacher  = "sc:teacher:"
	ClassRoom     = "sc:room:"
	ClassPatterns = "sc:patterns"
	ClassPattern  = "sc:pattern:"
	ClassAuto     = "sc:auto"
	SessionAdd    = "sc:sadd"
	SessionDel    = "sc:sdel:"  // sc:sdel:1
	SessionDays   = "sc:sdays:" // sc:sdays:1 - выбор дня
	SessionDay    = "sc:sday:"  // sc:sday:1:3
	SessionTime   = "sc:stime:" // sc:stime:1
	ClassCheck    = "sc:check"
	ClassPreview  = "sc:preview"
	ClassImage    = "sc:img:" // sc:img:0
	ClassCreate   = "sc:create"
	ClassReset    = "sc:reset"

	GroupOpen    = "sg:open"
	GroupShow    = "sg:show"
	GroupField   = "sg:field:"
	GroupCourses = "sg:courses:"
	GroupCourse  = "sg:course:"
	GroupPay     = "sg:pay:"
	GroupSearch  = "sg:search"
	GroupToggle  = "sg:toggle:"
	GroupSave    = "sg:save"
	GroupCancel  = "sg:cancel"

	EventShow         = "se:show"
	EventNext         = "se:next"
	EventPrev         = "se:prev"
	EventField        = "se:field:"
	EventBranches     = "se:branches:"
	EventBranch       = "se:branch:"
	EventRooms        = "se:rooms:"
	EventRoom         = "se:room:"
	EventOrganizers   = "se:orgs:"
	EventOrganizer    = "se:org:"
	EventPatterns     = "se:patterns"
	EventPattern      = "se:pattern:"
	EventSlotAdd      = "se:slotadd"
	EventSlotDel      = "se:slotdel:"
	EventSearch       = "se:search"
	EventParticipant  = "se:padd:"
	EventParticipantX = "se:pdel:"
	EventCreate       = "se:create"

	PreviewWeek  = "pi:" // pi:2
	PreviewClose = "pi:close"
)

// Поля, которые вводятся текстом, но не являются wizard.Field
const (
	fieldStartDate   = "start_date"
	fieldEndDate     = "end_date"
	fieldMaxStudents = "max_students"
	fieldGroupName   = "group_name"
	fieldLevel       = "level"
	fieldDescription = "description"
)
