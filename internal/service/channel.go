// internal/service/channel.go
package service

import "github.com/unclebandit/brokerbridge-backend/internal/model"

// SelectChannel is a pure decision: email beats sms, and none means the
// candidate needs manual follow-up.
func SelectChannel(c *model.CandidateRecord) model.Channel {
	if c.Email != "" {
		return model.ChannelEmail
	}
	if c.Phone != "" {
		return model.ChannelSMS
	}
	return model.ChannelNone
}
