// ABOUTME: Endpoint and constant registry for the Movierama client
// ABOUTME: API paths, paging and field limits, and user-facing messages

package constants

// Backend locations. Both can be overridden through configuration.
const (
	APIBaseURL  = "http://localhost:8080/movierama"
	APIAuthURL  = "https://tsompos-movierama.auth.eu-central-1.amazoncognito.com"
	AccessToken = "accessToken"
)

// Paging and field limits
const (
	MoviesListSize = 5

	MovieTitleMaxLength       = 100
	MovieDescriptionMaxLength = 400

	NameMinLength     = 4
	NameMaxLength     = 40
	UsernameMinLength = 3
	UsernameMaxLength = 15
	EmailMaxLength    = 40
	PasswordMinLength = 6
	PasswordMaxLength = 20
)

// Messages
const (
	ApplicationName   = "Movierama"
	SuccessfulLogin   = "You're successfully logged in."
	SuccessfulLogout  = "You're successfully logged out."
	SuccessfulSignup  = "Thank you! You're successfully registered. Please Login to continue!"
	MovieCreated      = "Movie created successfully."
	VoteRequiresLogin = "Please login to vote."
	SessionExpired    = "Your session has expired. Please login again."
	UsernameTaken     = "This username is already taken."
	EmailTaken        = "This email is already registered."

	NotFoundPageMessage    = "The Page you are looking for was not found"
	NotFoundPageCode       = 404
	ServerErrorPageMessage = "Oops! Something went wrong at our Server."
	ServerErrorPageCode    = 500

	LoginAuthorizationErrorMessage = "Your Username or Password is incorrect. Please try again!"
	LoginGeneralError              = "Sorry! Something went wrong. Please try again!"
)

// REST endpoints, relative to APIBaseURL unless noted
const (
	AuthSignInURL = "/signin"
	AuthSignUpURL = "/signup"

	UsersURL                     = "/users/"
	MoviesURL                    = "/movies/"
	CheckUsernameAvailabilityURL = "/users/checkUsernameAvailability?username="
	CheckEmailAvailabilityURL    = "/users/checkEmailAvailability?email="
	AddMovieURL                  = "/movies"
	ClearOpinionURL              = "/opinion/clear"
	OpinionURL                   = "/opinion"

	PrefixGetMoviesURL              = "/movies?page="
	PrefixGetMoviesOrderedByLikeURL = "/movies/ordered/like?page="
	PrefixGetMoviesOrderedByHateURL = "/movies/ordered/hate?page="
	GetMoviesOpinionsURL            = "/movies/opinions?page="
	SizeParameter                   = "&size="

	// CurrentUserURL is relative to APIAuthURL.
	CurrentUserURL = "/oauth2/userInfo"
)

// Client-side route paths
const (
	RootPath     = "/"
	LoginPath    = "/login"
	SignupPath   = "/signup"
	ProfilePath  = "/users/"
	NewMoviePath = "/movies/new"
)
