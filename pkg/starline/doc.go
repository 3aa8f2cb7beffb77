/*
Package starline is a client for the StarLine telematics web API: the SLID identity provider at
id.starline.ru and the developer API at developer.starline.ru.

The vendor's authorization protocol is a chain of calls, each one consuming the output of the
previous one. The [Client] holds no session state, so the caller threads every token through:

	client := starline.NewClient(starline.NewConfig(login, password, appID, secret), nil)

	code, err := client.FetchCode(ctx)          // application code
	appToken, err := client.FetchToken(ctx, code) // application token
	userToken, err := client.FetchUserToken(ctx, appToken, "")
	session, err := client.FetchSLNETToken(ctx, userToken)
	userID, err := session.UserIDInt()
	devices, err := client.FetchDevicesInfo(ctx, session.Token, userToken, userID)

# Errors

Failures fall into three groups:

  - Usage faults ([ErrInvalidParams], [ErrEmptyCode]) are returned before any request is made.
  - Operational faults (unexpected status, empty body, missing fields or cookies) are reported to
    the [Logger] passed to [NewClient] and returned as a [*ResponseError]. Use [IsResponseError] to
    tell them apart.
  - Transport faults (DNS, TLS, timeouts) are returned wrapped and are not logged.

Every request is bounded by a 15 second timeout; see [WithTimeout].
*/
package starline
