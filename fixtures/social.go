package fixtures

// TwitterSearchSource polls the Twitter search API.
type TwitterSearchSource struct {
	consumerKey       string
	consumerSecretKey string
	query             string
}

func (TwitterSearchSource) Kind() Kind {
	return KindTwitterSearch
}

func (s TwitterSearchSource) ConsumerKey() string {
	return s.consumerKey
}

func (s TwitterSearchSource) ConsumerSecretKey() string {
	return s.consumerSecretKey
}

// Query is the text searched for.
func (s TwitterSearchSource) Query() string {
	return s.query
}

func (s TwitterSearchSource) DSL() string {
	return "twittersearch " +
		option("consumerKey", s.consumerKey) + " " +
		option("consumerSecret", s.consumerSecretKey) + " " +
		option("query", s.query)
}

// TwitterStreamSource consumes the Twitter sample stream.
type TwitterStreamSource struct {
	consumerKey       string
	consumerSecretKey string
	accessToken       string
	accessTokenSecret string
}

func (TwitterStreamSource) Kind() Kind {
	return KindTwitterStream
}

func (s TwitterStreamSource) ConsumerKey() string {
	return s.consumerKey
}

func (s TwitterStreamSource) ConsumerSecretKey() string {
	return s.consumerSecretKey
}

func (s TwitterStreamSource) AccessToken() string {
	return s.accessToken
}

func (s TwitterStreamSource) AccessTokenSecret() string {
	return s.accessTokenSecret
}

func (s TwitterStreamSource) DSL() string {
	return "twitterstream " +
		option("consumerKey", s.consumerKey) + " " +
		option("consumerSecret", s.consumerSecretKey) + " " +
		option("accessToken", s.accessToken) + " " +
		option("accessTokenSecret", s.accessTokenSecret)
}

var (
	_ Source = TwitterSearchSource{}
	_ Source = TwitterStreamSource{}
)
