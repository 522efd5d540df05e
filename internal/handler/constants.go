package handler

// Route pattern constants for chi router registration.
const (
	// RouteRoot is the root path.
	RouteRoot = "/"
	// RouteAPI is the mount point of the REST API.
	RouteAPI = "/api"

	// RouteParamID is the ID parameter pattern.
	RouteParamID = "/{id}"
	// URLParamID is the chi URL parameter holding a resource id.
	URLParamID = "id"

	// RouteSentencePairs is the sentence pair collection route.
	RouteSentencePairs = "/sentence-pairs"
	// RouteAlignments is the alignment collection route.
	RouteAlignments = "/alignments"
	// RouteSuffixResetAll is the suffix of the bulk alignment delete route.
	RouteSuffixResetAll = "/reset-all"

	// RouteHealth is the full health check route.
	RouteHealth = "/health"
	// RouteHealthLive is the liveness probe route.
	RouteHealthLive = "/health/live"
	// RouteHealthReady is the readiness probe route.
	RouteHealthReady = "/health/ready"
)

// Query parameters.
const (
	// QueryParamSentencePairID filters alignments by owning pair.
	QueryParamSentencePairID = "sentence_pair_id"
)

// Response headers.
const (
	// HeaderDeletedCount reports how many rows a bulk delete removed.
	HeaderDeletedCount = "X-Deleted-Count"
)
