package constant

// Constant package provides constants used throughout the application.

type ctxKey string

const (
	CorrelationIDKey ctxKey = "CorrelationID"
	IdentityKey      ctxKey = "Identity"
)

// gin context keys
const (
	GinIdentityKey  = "identity"
	ValidatedBody   = "validatedBody"
	ValidatedParams = "validatedParams"
	ValidatedQuery  = "validatedQuery"
)

const (
	HeaderAuthorization = "Authorization"
	HeaderCorrelationID = "X-Correlation-ID"
	BearerPrefix        = "Bearer "
)

// Token claims
const (
	TokenIssuer   = "weather-service"
	TokenAudience = "weather-api"
	TokenType     = "BEARER"
	RoleUser      = "ROLE_USER"
)

// Routes
const (
	APIPrefix         = "/v1/api"
	RegisterPath      = APIPrefix + "/auth/register"
	TokenPath         = APIPrefix + "/auth/token"
	UsersPath         = APIPrefix + "/auth/users"
	WeatherPath       = APIPrefix + "/weather"
	HealthPath        = "/health"
	DefaultMetricPath = "/metrics"
)

// Upstream URI templates
const (
	GeoCoordinatesURI = "/geo/1.0/zip?zip={postalCode},{countryCode}&appid={apiKey}"
	CurrentWeatherURI = "/data/2.5/weather?lat={lat}&lon={lon}&appid={apiKey}"
	DefaultCountry    = "US"
)

const PostalCodePattern = `^\d{5}$`
