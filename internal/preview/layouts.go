package preview

const defaultLayout = "basic"

// layouts holds one HTML skeleton per template id. Keep these approximate:
// the goal is a recognizable draft rendering, not the production theme.
var layouts = map[string]string{
	"basic": `<article class="page page-basic">
  <header>{{if .Header}}{{.Header}}{{else}}<h1>{{placeholder "header"}}</h1>{{end}}</header>
  <div class="page-columns">
    <section class="page-body">{{if .Content}}{{.Content}}{{else}}<p>{{placeholder "content"}}</p>{{end}}</section>
    {{if .Image.URL}}<figure><img src="{{.Image.URL}}" alt="{{.Image.Alt}}"></figure>{{else}}<figure class="placeholder-image"></figure>{{end}}
  </div>
</article>`,

	"gallery": `<article class="page page-gallery">
  <header>{{if .Header}}{{.Header}}{{else}}<h1>{{placeholder "header"}}</h1>{{end}}</header>
  {{if .Intro}}<section class="intro">{{.Intro}}</section>{{end}}
  {{if .Images}}<ul class="gallery lightbox">
    {{range .Images}}<li><a href="{{.URL}}"><img src="{{.URL}}" alt="{{.Alt}}"></a>{{if .Caption}}<figcaption>{{.Caption}}</figcaption>{{end}}</li>
    {{end}}</ul>
  {{else}}<p class="empty">{{placeholder "gallery images"}}</p>{{end}}
</article>`,

	"landing": `<article class="page page-landing">
  <section class="hero">
    {{if .HeroImage.URL}}<img class="hero-image" src="{{.HeroImage.URL}}" alt="{{.HeroImage.Alt}}">{{end}}
    <h1>{{if .HeroTitle}}{{.HeroTitle}}{{else}}{{placeholder "hero title"}}{{end}}</h1>
    {{if .HeroSubtitle}}<p class="subtitle">{{.HeroSubtitle}}</p>{{end}}
  </section>
  {{if .Features}}<section class="features">
    {{range .Features}}<div class="feature">
      {{if .Icon.URL}}<img src="{{.Icon.URL}}" alt="{{.Icon.Alt}}">{{end}}
      <h3>{{.Title}}</h3>
      <p>{{.Description}}</p>
    </div>{{end}}
  </section>{{end}}
  {{if .CtaText}}<a class="cta" href="{{.CtaLink}}">{{.CtaText}}</a>{{end}}
</article>`,

	"portfolio": `<article class="page page-portfolio">
  <header>{{if .Header}}{{.Header}}{{else}}<h1>{{placeholder "header"}}</h1>{{end}}</header>
  {{if .Projects}}<ul class="portfolio-grid">
    {{range .Projects}}<li class="project">
      {{if .Thumbnail.URL}}<img src="{{.Thumbnail.URL}}" alt="{{.Thumbnail.Alt}}">{{else}}<div class="placeholder-image"></div>{{end}}
      <h3>{{if .Link}}<a href="{{.Link}}">{{.Title}}</a>{{else}}{{.Title}}{{end}}</h3>
      <p>{{.Summary}}</p>
    </li>{{end}}
  </ul>{{else}}<p class="empty">{{placeholder "projects"}}</p>{{end}}
</article>`,

	"contact": `<article class="page page-contact">
  <header>{{if .Header}}{{.Header}}{{else}}<h1>{{placeholder "header"}}</h1>{{end}}</header>
  {{if .Intro}}<section class="intro">{{.Intro}}</section>{{end}}
  <dl class="contact-info">
    {{if .Email}}<dt>Email</dt><dd><a href="mailto:{{.Email}}">{{.Email}}</a></dd>{{end}}
    {{if .Phone}}<dt>Phone</dt><dd>{{.Phone}}</dd>{{end}}
    {{if .Address}}<dt>Address</dt><dd>{{.Address}}</dd>{{end}}
  </dl>
  {{if .ShowForm}}<form class="enquiry-form"><input placeholder="Your email"><textarea placeholder="Message"></textarea><button>Send</button></form>{{end}}
</article>`,

	"blog": `<article class="page page-blog">
  <header>
    <h1>{{if .Title}}{{.Title}}{{else}}{{placeholder "title"}}{{end}}</h1>
    <p class="meta">{{if .Date}}<time datetime="{{.Date}}">{{.Date}}</time>{{end}}
    {{if .Tags}}{{range .Tags}}<span class="tag">{{.}}</span>{{end}}{{end}}</p>
  </header>
  {{if .Cover.URL}}<img class="cover" src="{{.Cover.URL}}" alt="{{.Cover.Alt}}">{{end}}
  {{if .Excerpt}}<p class="excerpt">{{.Excerpt}}</p>{{end}}
  <section class="post-body">{{if .Body}}{{.Body}}{{else}}<p>{{placeholder "body"}}</p>{{end}}</section>
</article>`,

	"main-content": `<article class="page page-home">
  <header>{{if .Headline}}{{.Headline}}{{else}}<h1>{{placeholder "headline"}}</h1>{{end}}</header>
  {{if .HeroImage.URL}}<img class="hero-image" src="{{.HeroImage.URL}}" alt="{{.HeroImage.Alt}}">{{end}}
  {{if .Intro}}<section class="intro">{{.Intro}}</section>{{end}}
  {{range .Sections}}<section class="home-section">
    <h2>{{.Heading}}</h2>
    <p>{{.Body}}</p>
    {{if .Image.URL}}<img src="{{.Image.URL}}" alt="{{.Image.Alt}}">{{end}}
  </section>{{end}}
  {{if .Highlights}}<ul class="gallery highlights">
    {{range .Highlights}}<li><img src="{{.URL}}" alt="{{.Alt}}">{{if .Caption}}<figcaption>{{.Caption}}</figcaption>{{end}}</li>{{end}}
  </ul>{{end}}
</article>`,
}
