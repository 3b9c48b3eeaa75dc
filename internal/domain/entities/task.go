package entities

// TaskKind identifies one content-generation task.
type TaskKind string

const (
	// TaskTitle generates the title-like field (headline or title).
	TaskTitle TaskKind = "title"
	// TaskOverview generates the long-form narrative field.
	TaskOverview TaskKind = "overview"
	// TaskSkillRanking selects and orders skills for the platform.
	TaskSkillRanking TaskKind = "skill_ranking"
	// TaskRateSuggestion suggests an hourly rate.
	TaskRateSuggestion TaskKind = "rate_suggestion"
	// TaskMessageReply drafts a reply to an inbound platform message.
	TaskMessageReply TaskKind = "message_reply"
)
