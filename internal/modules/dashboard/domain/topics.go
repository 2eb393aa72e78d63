package domain

import "strings"

const (
	SystemEntity  = "system"
	NoticesEntity = "notices"
	PanelsEntity  = "panels"

	TopicSystemConnected = SystemEntity + ".connected"
	TopicSystemPong      = SystemEntity + ".pong"
	TopicSystemError     = SystemEntity + ".error"

	ActionConnected = "connected"
	ActionPong      = "pong"
	ActionError     = "error"
	ActionPushed    = "pushed"
	ActionExpired   = "expired"
	ActionDismissed = "dismissed"
	ActionRefresh   = "refresh"

	TopicPanelsRefresh = PanelsEntity + "." + ActionRefresh

	MetaSessionID = "sessionId"
	MetaDashboard = "dashboard"
	MetaPanel     = "panel"
)

// NoticeTopic returns notices.<action>.
func NoticeTopic(action string) string {
	return buildEntityTopic(NoticesEntity, action)
}

// CustomTopic returns the canonical topic for the given entity and action.
func CustomTopic(entity, action string) string {
	return buildEntityTopic(entity, action)
}

func buildEntityTopic(entity, action string) string {
	cleanEntity := strings.TrimSpace(entity)
	cleanAction := strings.TrimSpace(action)
	if cleanEntity == "" || cleanAction == "" {
		return ""
	}
	return cleanEntity + "." + cleanAction
}

// ClientTopics lists the topics every dashboard socket subscribes to.
func ClientTopics() []string {
	return []string{
		TopicSystemPong,
		TopicSystemError,
		NoticeTopic(ActionPushed),
		NoticeTopic(ActionExpired),
		NoticeTopic(ActionDismissed),
		TopicPanelsRefresh,
	}
}
