package schedule

import (
	"context"
	"strings"

	"github.com/Freeeeeet/school_admin_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/school_admin_bot/internal/controller/callbacks/common"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Route распределяет callbacks мастера расписаний (sw:, sc:, sg:, se:, pi:)
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	data := callback.Data

	switch {
	// ===== Обёртка =====
	case data == Open:
		HandleOpen(ctx, b, callback, h)
	case data == PickClass:
		HandlePickClass(ctx, b, callback, h)
	case data == PickEvent:
		HandlePickEvents(ctx, b, callback, h)
	case strings.HasPrefix(data, EventType):
		HandleEventType(ctx, b, callback, h)
	case data == Back:
		HandleBack(ctx, b, callback, h)
	case data == Close:
		HandleClose(ctx, b, callback, h)
	case data == StopInput:
		HandleStopInput(ctx, b, callback, h)

	// ===== Класс =====
	case strings.HasPrefix(data, ClassTab):
		HandleClassTab(ctx, b, callback, h)
	case data == ClassNext:
		HandleClassNext(ctx, b, callback, h)
	case data == ClassPrev:
		HandleClassPrev(ctx, b, callback, h)
	case strings.HasPrefix(data, ClassField):
		HandleClassField(ctx, b, callback, h)
	case strings.HasPrefix(data, ClassBranches):
		HandleClassBranches(ctx, b, callback, h)
	case strings.HasPrefix(data, ClassBranch):
		HandleClassBranch(ctx, b, callback, h)
	case strings.HasPrefix(data, ClassGroups):
		HandleClassGroups(ctx, b, callback, h)
	case strings.HasPrefix(data, ClassGroup):
		HandleClassGroup(ctx, b, callback, h)
	case strings.HasPrefix(data, ClassTeachers):
		HandleClassTeachers(ctx, b, callback, h)
	case strings.HasPrefix(data, ClassTeacher):
		HandleClassTeacher(ctx, b, callback, h)
	case strings.HasPrefix(data, ClassRoom):
		HandleClassRoom(ctx, b, callback, h)
	case data == ClassPatterns:
		HandleClassPatterns(ctx, b, callback, h)
	case strings.HasPrefix(data, ClassPattern):
		HandleClassPattern(ctx, b, callback, h)
	case data == ClassAuto:
		HandleClassAuto(ctx, b, callback, h)
	case data == SessionAdd:
		HandleSessionAdd(ctx, b, callback, h)
	case strings.HasPrefix(data, SessionDel):
		HandleSessionDel(ctx, b, callback, h)
	case strings.HasPrefix(data, SessionDays):
		HandleSessionDays(ctx, b, callback, h)
	case strings.HasPrefix(data, SessionDay):
		HandleSessionDay(ctx, b, callback, h)
	case strings.HasPrefix(data, SessionTime):
		HandleSessionTime(ctx, b, callback, h)
	case data == ClassCheck:
		HandleClassCheck(ctx, b, callback, h)
	case data == ClassPreview:
		HandleClassPreview(ctx, b, callback, h)
	case strings.HasPrefix(data, ClassImage):
		HandleClassImage(ctx, b, callback, h)
	case data == ClassCreate:
		HandleClassCreate(ctx, b, callback, h)
	case data == ClassReset:
		HandleClassReset(ctx, b, callback, h)

	// ===== Новая группа =====
	case data == GroupOpen:
		HandleGroupOpen(ctx, b, callback, h)
	case data == GroupShow:
		HandleGroupShow(ctx, b, callback, h)
	case strings.HasPrefix(data, GroupField):
		HandleGroupField(ctx, b, callback, h)
	case strings.HasPrefix(data, GroupCourses):
		HandleGroupCourses(ctx, b, callback, h)
	case strings.HasPrefix(data, GroupCourse):
		HandleGroupCourse(ctx, b, callback, h)
	case strings.HasPrefix(data, GroupPay):
		HandleGroupPay(ctx, b, callback, h)
	case data == GroupSearch:
		HandleGroupSearch(ctx, b, callback, h)
	case strings.HasPrefix(data, GroupToggle):
		HandleGroupToggle(ctx, b, callback, h)
	case data == GroupSave:
		HandleGroupSave(ctx, b, callback, h)
	case data == GroupCancel:
		HandleGroupCancel(ctx, b, callback, h)

	// ===== Событие =====
	case data == EventShow:
		HandleEventShow(ctx, b, callback, h)
	case data == EventNext:
		HandleEventNext(ctx, b, callback, h)
	case data == EventPrev:
		HandleEventPrev(ctx, b, callback, h)
	case strings.HasPrefix(data, EventField):
		HandleEventField(ctx, b, callback, h)
	case strings.HasPrefix(data, EventBranches):
		HandleEventBranches(ctx, b, callback, h)
	case strings.HasPrefix(data, EventBranch):
		HandleEventBranch(ctx, b, callback, h)
	case strings.HasPrefix(data, EventRooms):
		HandleEventRooms(ctx, b, callback, h)
	case strings.HasPrefix(data, EventRoom):
		HandleEventRoom(ctx, b, callback, h)
	case strings.HasPrefix(data, EventOrganizers):
		HandleEventOrganizers(ctx, b, callback, h)
	case strings.HasPrefix(data, EventOrganizer):
		HandleEventOrganizer(ctx, b, callback, h)
	case data == EventPatterns:
		HandleEventPatterns(ctx, b, callback, h)
	case strings.HasPrefix(data, EventPattern):
		HandleEventPattern(ctx, b, callback, h)
	case data == EventSlotAdd:
		HandleEventSlotAdd(ctx, b, callback, h)
	case strings.HasPrefix(data, EventSlotDel):
		HandleEventSlotDel(ctx, b, callback, h)
	case data == EventSearch:
		HandleEventSearch(ctx, b, callback, h)
	case strings.HasPrefix(data, EventParticipant):
		HandleEventParticipant(ctx, b, callback, h)
	case strings.HasPrefix(data, EventParticipantX):
		HandleEventParticipantRemove(ctx, b, callback, h)
	case data == EventCreate:
		HandleEventCreate(ctx, b, callback, h)

	// ===== Картинка preview =====
	case data == PreviewClose:
		HandlePreviewClose(ctx, b, callback, h)
	case strings.HasPrefix(data, PreviewWeek):
		HandlePreviewWeek(ctx, b, callback, h)

	default:
		h.Logger.Warn("Unknown wizard callback", zap.String("data", data))
		common.AnswerCallback(ctx, b, callback.ID, "")
	}
}
