package common

import (
	"github.com/neftit-lab/backend/internal/model"
	"github.com/neftit-lab/backend/pkg/pubsub"
)

const (
	TopicChainSwitched        pubsub.Topic[model.ChainSwitchedEvent]        = "chain.switched"
	TopicDiscordRolesVerified pubsub.Topic[model.DiscordRolesVerifiedEvent] = "discord.roles_verified"
	TopicNFTClaimed           pubsub.Topic[model.NFTClaimedEvent]           = "nft.claimed"
)
