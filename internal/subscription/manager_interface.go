package subscription

import "github.com/VitaminP8/blogql/graph/model"

type Manager interface {
	Subscribe() (<-chan *model.Post, func())
	Publish(post *model.Post)
}
