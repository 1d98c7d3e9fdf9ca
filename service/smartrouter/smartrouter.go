package smartrouter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/sakyarasadi/tourguideBackend/constant"
	"github.com/sakyarasadi/tourguideBackend/model"
	"github.com/sakyarasadi/tourguideBackend/pkg/knowledge"
	"github.com/sakyarasadi/tourguideBackend/repository/factory"
	"github.com/sakyarasadi/tourguideBackend/service/bot"
	"github.com/sakyarasadi/tourguideBackend/service/guide"
	"github.com/sakyarasadi/tourguideBackend/service/tourist"
)

const (
	serviceName = "smart_router"

	// kbSimilarityThreshold decides whether the knowledge base answer is
	// good enough to short-circuit endpoint routing.
	kbSimilarityThreshold = 0.6
)

// Endpoint names the router can dispatch to.
const (
	EndpointCreateTourRequest    = "create_tour_request"
	EndpointGetTourRequests      = "get_tour_requests"
	EndpointGetTourRequest       = "get_tour_request"
	EndpointUpdateTourRequest    = "update_tour_request"
	EndpointCancelTourRequest    = "cancel_tour_request"
	EndpointGetBookings          = "get_bookings"
	EndpointGetApplications      = "get_applications"
	EndpointAcceptApplication    = "accept_application"
	EndpointAIAssist             = "ai_assist"
	EndpointGetAvailableRequests = "get_available_requests"
	EndpointApplyToRequest       = "apply_to_request"
	EndpointGetMyApplications    = "get_my_applications"
	EndpointGetMyBookings        = "get_my_bookings"
	EndpointUpdateApplication    = "update_application"
	EndpointGetApplicationDetail = "get_application_details"
	EndpointAIAssistGuide        = "ai_assist_guide"
)

// Request is the smart-router input: a free-text query plus whatever
// identity the client can supply.
type Request struct {
	Text      string `json:"text"`
	Query     string `json:"query"`
	UserID    string `json:"userid"`
	UserIDAlt string `json:"userId"`
	TouristID string `json:"touristId"`
	GuideID   string `json:"guideId"`
	UserRole  string `json:"userRole"`
	SessionID string `json:"sessionId"`
}

// QueryText returns the text field, falling back to query.
func (r *Request) QueryText() string {
	if r.Text != "" {
		return r.Text
	}
	return r.Query
}

// ResolveUserID returns the first identity field the client supplied.
func (r *Request) ResolveUserID() string {
	for _, id := range []string{r.UserID, r.UserIDAlt, r.TouristID, r.GuideID} {
		if id != "" {
			return id
		}
	}
	return ""
}

// Result carries the routed operation's outcome back to the controller.
// A non-empty ErrorCode marks an error envelope.
type Result struct {
	Message    string
	Data       interface{}
	HTTPStatus int
	ErrorCode  string
}

func okResult(message string, data interface{}) *Result {
	return &Result{Message: message, Data: data, HTTPStatus: http.StatusOK}
}

func createdResult(message string, data interface{}) *Result {
	return &Result{Message: message, Data: data, HTTPStatus: http.StatusCreated}
}

func errResult(status int, message, errorCode string) *Result {
	return &Result{Message: message, HTTPStatus: status, ErrorCode: errorCode}
}

type routingDecision struct {
	Endpoint   string                 `json:"endpoint"`
	Confidence float64                `json:"confidence"`
	Parameters map[string]interface{} `json:"parameters"`
	Reasoning  string                 `json:"reasoning"`
}

func (d *routingDecision) param(key string) string {
	raw, ok := d.Parameters[key]
	if !ok || raw == nil {
		return ""
	}
	str, ok := raw.(string)
	if !ok || str == "null" {
		return ""
	}
	return str
}

var (
	serviceOnce sync.Once
	instance    *Service
)

type Service struct {
	repositoryFactory factory.Factory
	botService        *bot.Service
	touristService    *tourist.Service
	guideService      *guide.Service
	store             *knowledge.Store
}

func NewService(repositoryFactory factory.Factory) *Service {
	serviceOnce.Do(func() {
		instance = &Service{
			repositoryFactory: repositoryFactory,
			botService:        bot.NewService(repositoryFactory),
			touristService:    tourist.NewService(repositoryFactory),
			guideService:      guide.NewService(repositoryFactory),
			store:             knowledge.GetInstance(),
		}
	})
	return instance
}

// jsonObjectExpr finds the first JSON object in an LLM reply, tolerating
// one level of nesting.
var jsonObjectExpr = regexp.MustCompile(`\{[^{}]*(?:\{[^{}]*\}[^{}]*)*\}`)

func extractJSON(text string, out interface{}) bool {
	match := jsonObjectExpr.FindString(text)
	if match == "" {
		return json.Unmarshal([]byte(text), out) == nil
	}
	return json.Unmarshal([]byte(match), out) == nil
}

// Route answers a free-text query: the knowledge base first, then
// intent detection and dispatch to the matching structured operation.
func (s *Service) Route(ctx context.Context, req *Request) (*Result, error) {
	text := req.QueryText()
	userID := req.ResolveUserID()
	userRole := strings.ToLower(req.UserRole)
	if userRole == "" {
		userRole = constant.UserRoleTourist
	}

	log.Infof("%s routing query for user %s role %s", serviceName, userID, userRole)

	if result := s.answerFromKnowledgeBase(ctx, text); result != nil {
		return result, nil
	}

	decision := s.decideEndpoint(ctx, req, text, userID, userRole)

	// tour-creation phrasing routed to the general assistant is almost
	// always wrong, so override it
	if decision.Endpoint == EndpointAIAssist && containsAny(strings.ToLower(text),
		"planning", "tour to", "visit", "destination", "budget", "people", "going to") {
		decision.Endpoint = EndpointCreateTourRequest
		decision.Confidence = 0.7
	}

	log.Infof("%s decision endpoint=%s confidence=%.2f reasoning=%s",
		serviceName, decision.Endpoint, decision.Confidence, decision.Reasoning)

	if userRole == constant.UserRoleGuide {
		return s.dispatchGuide(ctx, req, decision, text, userID)
	}
	return s.dispatchTourist(ctx, req, decision, text, userID)
}

func (s *Service) answerFromKnowledgeBase(ctx context.Context, text string) *Result {
	if s.store == nil || !s.store.IsReady() {
		return nil
	}

	results, err := s.store.Query(ctx, text, 1)
	if err != nil || len(results) == 0 {
		return nil
	}
	best := results[0]
	if float64(best.Similarity) < kbSimilarityThreshold {
		return nil
	}

	return okResult("Answer found in knowledge base", map[string]interface{}{
		"source":           "knowledge_base",
		"query":            text,
		"answer":           best.Content,
		"similarity_score": best.Similarity,
		"filename":         best.Source,
	})
}

func (s *Service) decideEndpoint(ctx context.Context, req *Request, text, userID, userRole string) *routingDecision {
	var prompt string
	if userRole == constant.UserRoleGuide {
		prompt = guideRouterPrompt(text, userID)
	} else {
		prompt = touristRouterPrompt(text, userID)
	}

	sessionID := req.SessionID
	if sessionID == "" {
		if userID != "" {
			sessionID = fmt.Sprintf("%s_%s", userRole, userID)
		} else {
			sessionID = serviceName
		}
	}

	aiResponse := s.botService.ProcessMessage(ctx, prompt, sessionID, userRole)

	decision := &routingDecision{}
	if !extractJSON(aiResponse.Response, decision) || decision.Endpoint == "" {
		log.Warnf("%s could not parse routing response, falling back to keywords", serviceName)
		decision = determineEndpointFromKeywords(text)
	}
	if decision.Parameters == nil {
		decision.Parameters = map[string]interface{}{}
	}
	return decision
}

// determineEndpointFromKeywords is the routing fallback when the LLM
// returns no parseable decision.
func determineEndpointFromKeywords(text string) *routingDecision {
	textLower := strings.ToLower(text)

	switch {
	case containsAny(textLower,
		"planning", "plan", "create", "book", "new tour", "request tour",
		"want to visit", "going to", "tour to", "trip to", "visit",
		"cultural tour", "adventure tour", "budget", "people", "destination"):
		return &routingDecision{Endpoint: EndpointCreateTourRequest, Confidence: 0.8,
			Parameters: map[string]interface{}{}, Reasoning: "Keywords suggest tour creation"}
	case containsAny(textLower, "list", "show", "my requests", "all requests", "search"):
		return &routingDecision{Endpoint: EndpointGetTourRequests, Confidence: 0.7,
			Parameters: map[string]interface{}{}, Reasoning: "Keywords suggest listing requests"}
	case containsAny(textLower, "update", "change", "modify", "edit"):
		return &routingDecision{Endpoint: EndpointUpdateTourRequest, Confidence: 0.7,
			Parameters: map[string]interface{}{}, Reasoning: "Keywords suggest update operation"}
	case containsAny(textLower, "cancel", "delete", "remove"):
		return &routingDecision{Endpoint: EndpointCancelTourRequest, Confidence: 0.7,
			Parameters: map[string]interface{}{}, Reasoning: "Keywords suggest cancellation"}
	case containsAny(textLower, "bookings", "my bookings"):
		return &routingDecision{Endpoint: EndpointGetBookings, Confidence: 0.7,
			Parameters: map[string]interface{}{}, Reasoning: "Keywords suggest booking query"}
	case containsAny(textLower, "applications", "applicants", "proposals"):
		return &routingDecision{Endpoint: EndpointGetApplications, Confidence: 0.7,
			Parameters: map[string]interface{}{}, Reasoning: "Keywords suggest application query"}
	case containsAny(textLower, "accept", "approve", "select guide"):
		return &routingDecision{Endpoint: EndpointAcceptApplication, Confidence: 0.7,
			Parameters: map[string]interface{}{}, Reasoning: "Keywords suggest accepting application"}
	case containsAny(textLower, "tour", "trip", "destination", "visit", "travel"):
		return &routingDecision{Endpoint: EndpointCreateTourRequest, Confidence: 0.6,
			Parameters: map[string]interface{}{}, Reasoning: "Contains tour-related keywords, defaulting to create"}
	default:
		return &routingDecision{Endpoint: EndpointAIAssist, Confidence: 0.5,
			Parameters: map[string]interface{}{}, Reasoning: "No clear endpoint match, using AI assist"}
	}
}

func containsAny(text string, terms ...string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

var idExprs = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:request|id|ID)[\s:]*([A-Z0-9\-]+)`),
	regexp.MustCompile(`([A-Z0-9]{8,})`),
	regexp.MustCompile(`#(\d+)`),
}

func extractIDFromText(text string) string {
	for _, expr := range idExprs {
		if m := expr.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	}
	return ""
}

var uuidExpr = regexp.MustCompile(`(?i)^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

func aiAssistData(query string, result *model.BotResult, sessionID string) map[string]interface{} {
	return map[string]interface{}{
		"query":     query,
		"response":  result.Response,
		"reasoning": result.Reasoning,
		"sessionId": sessionID,
	}
}
