package messaging

import (
	"fmt"

	"membership/config"
	"membership/models"
)

const (
	welcomeSubject      = "The Pirate Party - Welcome"
	verificationSubject = "The Pirate Party - Verify Your Email"
	renewalSubject      = "The Pirate Party - Renew Your Membership"
)

func welcomeBody(_ *models.Member) string {
	return `Welcome to the Pirate Party!

You can now start participating and getting involved towards the development of a more secure and transparent Australia.

For a list of upcoming meetings and discussions, head to pirateparty.org.au

Best,

The Pirate Party`
}

func verificationBody(member *models.Member) string {
	return fmt.Sprintf(`Hello,

Thank you for your membership application to the Pirate Party.

You're almost done! The last step is to verify your membership by clicking on the link below.

%s/members/verify/%s

Best,

The Pirate Party`, config.AppConfig.PublicURL, member.VerificationHash)
}

func renewalBody(member *models.Member) string {
	return fmt.Sprintf(`Hello,

Your Pirate Party membership is due to expire in 90 days. To renew it, please click on the following link:

%s/members/renew/%s

Should you have any questions or concerns, do not hesitate to contact us at %s.

Best,

The Pirate Party`, config.AppConfig.PublicURL, member.RenewalHash, config.AppConfig.MembershipEmail)
}
