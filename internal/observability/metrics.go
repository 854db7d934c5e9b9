package observability

import "github.com/prometheus/client_golang/prometheus"

var (
	APIRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "walink_api_requests_total", Help: "API requests"},
		[]string{"route", "status"},
	)
	LinksIssued = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "walink_links_issued_total", Help: "Click-to-chat links issued"},
		[]string{"kind"},
	)
	InvalidPhones = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "walink_invalid_phones_total", Help: "Links built for numbers libphonenumber rejects"},
		[]string{"kind"},
	)
	PhoneLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "walink_phone_lookups_total", Help: "User phone lookups"},
		[]string{"result"},
	)
	PhoneCache = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "walink_phone_cache_total", Help: "Phone cache reads"},
		[]string{"result"},
	)
	LinkLogWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "walink_link_log_writes_total", Help: "Link audit log inserts"},
		[]string{"result"},
	)
	LinkEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "walink_link_events_total", Help: "link.issued publishes"},
		[]string{"result"},
	)
)

func Register(reg prometheus.Registerer) {
	reg.MustRegister(APIRequests, LinksIssued, InvalidPhones, PhoneLookups, PhoneCache, LinkLogWrites, LinkEvents)
}
