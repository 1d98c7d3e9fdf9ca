package smartrouter

import "fmt"

const guideRouterPromptFmt = `You are a smart router for a tour guide platform. Analyze the guide's request and determine which endpoint should be called.

User Role: GUIDE

Available endpoints for guides:
1. get_available_requests - List tour requests available for application (browse requests, show available tours, find opportunities)
2. apply_to_request - Apply to a tour request with proposal
3. get_my_applications - View guide's applications
4. get_my_bookings - View guide's confirmed bookings
5. update_application - Update/withdraw an application
6. get_application_details - Get single application with tour details
7. ai_assist_guide - General AI assistance for guides

User request: "%s"

IMPORTANT:
- "browse", "show available", "find requests", "give all requests" -> get_available_requests
- "my applications", "show my applications" -> get_my_applications
- "my bookings", "show my bookings", "show my [tour name] booking" -> get_my_bookings
- "apply to" -> apply_to_request

Return ONLY a valid JSON object (no markdown, no explanation, just JSON):
{
    "endpoint": "endpoint_name",
    "confidence": 0.0-1.0,
    "parameters": {
        "guideId": "%s",
        "requestId": "extracted or null",
        "applicationId": "extracted or null"
    },
    "reasoning": "brief explanation of why this endpoint"
}

Valid JSON only:`

const touristRouterPromptFmt = `You are a smart router for a tourist booking system. Analyze the user request and determine which endpoint should be called.

User Role: TOURIST

CRITICAL RULES:
1. If the user mentions planning/creating/booking a tour with ANY details (destination, dates, budget, people), route to create_tour_request
2. DO NOT route tour creation requests to ai_assist - they MUST go to create_tour_request
3. The ai_assist endpoint is ONLY for general questions that don't involve tour operations

Available endpoints and their purposes:
1. create_tour_request - For creating/planning new tour requests. Use when user wants to:
   - Plan a tour, create a tour, book a tour, request a tour
   - Describe a trip they want to take (dates, destination, budget, people)
   - Any request mentioning "planning", "want to visit", "going to", "tour to [destination]"

2. get_tour_requests - For listing/searching existing tour requests. Use when user wants to:
   - See their requests, list tours, show my requests, find tours

3. get_tour_request - For getting details of a single tour request. Use when:
   - User asks about a specific request ID or wants details of one request

4. update_tour_request - For updating existing tour requests. Use when:
   - User wants to change, modify, update, edit an existing tour

5. cancel_tour_request - For cancelling tour requests. Use when:
   - User wants to cancel, delete, remove a tour request

6. get_bookings - For viewing bookings. Use when:
   - User asks about bookings, my bookings, booked tours, show my bookings
   - User asks about specific tour bookings like "show my japan tour booking"

7. get_applications - For viewing applications. Use when:
   - User wants to see applications, applicants, proposals for a request

8. accept_application - For accepting applications. Use when:
   - User wants to accept, approve, select a guide application

9. ai_assist - ONLY use for general questions that don't involve tour operations:
   - General travel advice
   - Questions about destinations (NOT for creating tours)
   - General help/information

User request: "%s"

Analyze this carefully. If it's a tour creation/planning request, route to create_tour_request.
Extract any parameters you can identify (touristId, requestId, etc.) from the text.

Return ONLY a valid JSON object (no markdown, no explanation, just JSON):
{
    "endpoint": "endpoint_name",
    "confidence": 0.0-1.0,
    "parameters": {
        "touristId": "%s",
        "requestId": "extracted or null",
        "applicationId": "extracted or null"
    },
    "reasoning": "brief explanation of why this endpoint"
}

Valid JSON only:`

const parseTourRequestPromptFmt = `Parse the following tour request text and extract structured information.
Return ONLY a valid JSON object with these exact fields (no markdown, no explanation, just JSON):
{
    "title": "extracted or generated tour title",
    "destination": "location/city",
    "startDate": "YYYY-MM-DD format",
    "endDate": "YYYY-MM-DD format",
    "budget": number,
    "numberOfPeople": number,
    "tourType": "cultural/adventure/beach/etc",
    "languages": ["list", "of", "languages"],
    "description": "full description",
    "requirements": "special requirements or empty string",
    "touristName": "name if mentioned",
    "touristEmail": "email if mentioned or empty string"
}

Tour request text:
%s

Extract all relevant information and return valid JSON only:`

const parseBrowseFiltersPromptFmt = `Parse this guide's query for browsing tour requests and extract filters.
Return ONLY a valid JSON object (no markdown, no explanation, just JSON):
{
    "destination": "location/city or null",
    "tourType": "cultural/adventure/beach/etc or null",
    "minBudget": number or null,
    "maxBudget": number or null,
    "startDateFrom": "YYYY-MM-DD or null",
    "startDateTo": "YYYY-MM-DD or null",
    "languages": ["list", "of", "languages"] or [],
    "numberOfPeople": number or null,
    "requirements": "accessibility/special requirements or null",
    "search": "search term or null"
}

Guide's query: "%s"

Extract all relevant filters. Return valid JSON only:`

const parseApplicationPromptFmt = `Parse this guide application and extract:
{
    "proposedPrice": number or null,
    "coverLetter": "string or null"
}

Application text: %s
Tour request: %s in %s, Budget: $%.0f

IMPORTANT: If user mentions a price/budget number, extract it as proposedPrice.
If user says "cover letter no need" or similar, set coverLetter to null.

Return ONLY valid JSON. If information is missing, use null:`

const parseUpdatePromptFmt = `Current tour request:
%s

Update instruction: %s

Return ONLY a valid JSON object with updated fields (no markdown, just JSON):
{
    "title": "...",
    "destination": "...",
    "budget": number,
    ...
}

Only include fields that need to be updated. Return valid JSON only:`

const suggestionsPromptFmt = `Based on this tour request: %s

Please provide suggestions for:
1. Recommended activities/attractions
2. Budget optimization tips
3. Best practices for this type of tour
4. What to pack/prepare

Keep the response concise and actionable.`

func guideRouterPrompt(text, userID string) string {
	if userID == "" {
		userID = "null"
	}
	return fmt.Sprintf(guideRouterPromptFmt, text, userID)
}

func touristRouterPrompt(text, userID string) string {
	if userID == "" {
		userID = "null"
	}
	return fmt.Sprintf(touristRouterPromptFmt, text, userID)
}
