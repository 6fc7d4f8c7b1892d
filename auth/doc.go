/*
Package auth provides easy methods to authenticate with a Tapis gateway

The main fixture of the auth package is the Gateway interface.
Gateway provides all of the features needed by the rest of the
pipeline to move files, submit jobs, and message other actors.
The default implementation, TapisGateway, speaks the Tapis v2 REST
API directly. We did this to make it easy to write tests against mock
implementations of the Gateway interface. Those mock implementations
can be found in the mock subpackage.

The intended use of auth is to call either Authenticate() or
AuthenticateWithToken() with your credentials to set up a Gateway.

Authenticate performs the OAuth2 password grant against the gateway's
token endpoint, so it needs the consumer key and secret of a registered
OAuth client in addition to your username and password. You can create
a client with the tenant's client service; the key and secret it hands
back are what Authenticate calls consumerKey and consumerSecret.

Assuming your client credentials look as follows:

	{
	  "consumerKey": "gTgp7zU8MJzVE8oCu0sKBOWeEbAa",
	  "consumerSecret": "VcRCzVXq33Nkj3dsq92mmkebhcwa"
	}

you can authenticate with:

	Authenticate("https://api.tacc.utexas.edu", "gTgp7zU...", "VcRCzV...", "username", "password")

Inside a running actor there is no password available, but the platform
injects a short-lived access token into the environment. Build a Gateway
from it with:

	AuthenticateWithToken("https://api.tacc.utexas.edu", token)

or use the Gateway() helper on an execution Context, which does the same.
*/
package auth
