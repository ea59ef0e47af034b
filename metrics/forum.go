package metrics

import "github.com/prometheus/client_golang/prometheus"

// ForumMetrics counts forum writes and moderation outcomes.
// A nil *ForumMetrics records nothing.
type ForumMetrics struct {
	PostsCreated         prometheus.Counter
	PostsDeleted         prometheus.Counter
	CommentsAdded        *prometheus.CounterVec
	ModerationRejections *prometheus.CounterVec
}

func NewForumMetrics(reg prometheus.Registerer) *ForumMetrics {
	m := &ForumMetrics{
		PostsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "posts_created_total",
			Help:      "Posts accepted and stored.",
		}),
		PostsDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "posts_deleted_total",
			Help:      "Posts removed by their author.",
		}),
		CommentsAdded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "comments_added_total",
			Help:      "Comments appended to posts, by kind.",
		}, []string{"kind"}),
		ModerationRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "moderation",
			Name:      "rejections_total",
			Help:      "Submissions rejected by moderation, by target and reason.",
		}, []string{"target", "reason"}),
	}

	reg.MustRegister(m.PostsCreated, m.PostsDeleted, m.CommentsAdded, m.ModerationRejections)
	return m
}

func (m *ForumMetrics) PostCreated() {
	if m != nil {
		m.PostsCreated.Inc()
	}
}

func (m *ForumMetrics) PostDeleted() {
	if m != nil {
		m.PostsDeleted.Inc()
	}
}

// CommentAdded records a comment; reply distinguishes threaded replies.
func (m *ForumMetrics) CommentAdded(reply bool) {
	if m == nil {
		return
	}
	kind := "comment"
	if reply {
		kind = "reply"
	}
	m.CommentsAdded.WithLabelValues(kind).Inc()
}

func (m *ForumMetrics) Rejected(target, reason string) {
	if m != nil {
		m.ModerationRejections.WithLabelValues(target, reason).Inc()
	}
}
